// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "evfinder"

// Metrics groups the service's Prometheus collectors
type Metrics struct {
	EventsEvaluated    prometheus.Counter
	Opportunities      *prometheus.CounterVec
	ProviderRequests   *prometheus.CounterVec
	CacheLookups       *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_evaluated_total",
			Help:      "Number of event snapshots evaluated.",
		}),
		Opportunities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "opportunities_total",
			Help:      "Positive-EV markets and bets found.",
		}, []string{"kind"}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Requests made to the pricing provider.",
		}, []string{"endpoint", "status"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Snapshot cache lookups by result.",
		}, []string{"result"}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent evaluating a snapshot.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	reg.MustRegister(
		m.EventsEvaluated,
		m.Opportunities,
		m.ProviderRequests,
		m.CacheLookups,
		m.EvaluationDuration,
	)

	return m
}

// ObserveEvaluation records one batch evaluation
func (m *Metrics) ObserveEvaluation(events, markets, bets int, took time.Duration) {
	m.EventsEvaluated.Add(float64(events))
	m.Opportunities.WithLabelValues("market").Add(float64(markets))
	m.Opportunities.WithLabelValues("bet").Add(float64(bets))
	m.EvaluationDuration.Observe(took.Seconds())
}

// ProviderRequest records the outcome of a provider call
func (m *Metrics) ProviderRequest(endpoint string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ProviderRequests.WithLabelValues(endpoint, status).Inc()
}

// CacheLookup records a cache hit, miss or error
func (m *Metrics) CacheLookup(result string) {
	m.CacheLookups.WithLabelValues(result).Inc()
}
