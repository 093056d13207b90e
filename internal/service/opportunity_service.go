package service

//go:generate mockgen -source=snapshot_interfaces.go -destination=../mocks/mock_snapshot.go -package=mocks
//go:generate mockgen -source=evaluator_interface.go -destination=../mocks/mock_evaluator.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mattkeefer/sports-odds-backend/internal/cache"
	"github.com/mattkeefer/sports-odds-backend/internal/metrics"
	"github.com/mattkeefer/sports-odds-backend/internal/models"
	"github.com/mattkeefer/sports-odds-backend/internal/sources"
)

// OpportunityService orchestrates snapshot retrieval, evaluation and publishing
type OpportunityService struct {
	provider  SnapshotProvider
	evaluator Evaluator
	registry  *sources.Registry

	// Optional; nil disables caching or publishing
	cache     SnapshotCache
	publisher OpportunityPublisher

	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewOpportunityService creates a new opportunity service
func NewOpportunityService(
	provider SnapshotProvider,
	cache SnapshotCache,
	evaluator Evaluator,
	publisher OpportunityPublisher,
	registry *sources.Registry,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *OpportunityService {
	return &OpportunityService{
		provider:  provider,
		cache:     cache,
		evaluator: evaluator,
		publisher: publisher,
		registry:  registry,
		metrics:   metrics,
		logger:    logger.With().Str("component", "opportunity_service").Logger(),
	}
}

// FindOpportunities fetches the snapshot for a league and returns every event with positive-EV bets.
// Only a failed snapshot fetch is returned as an error.
func (s *OpportunityService) FindOpportunities(
	ctx context.Context,
	query models.OpportunityQuery,
	params models.EvaluationParams,
) ([]models.EvaluationResult, error) {
	filter := models.SnapshotFilter{
		Limit:         query.Limit,
		SourceIDs:     s.registry.Joined(),
		LeagueID:      query.LeagueID,
		Finalized:     false,
		OddsAvailable: true,
	}

	events, err := s.loadSnapshot(ctx, filter, query.Refresh)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := s.evaluator.EvaluateAll(events, params)
	took := time.Since(start)

	markets, bets := 0, 0
	for i := range results {
		markets += len(results[i].Opportunities)
		bets += results[i].BetCount()
	}
	s.metrics.ObserveEvaluation(len(events), markets, bets, took)

	s.publish(ctx, query.LeagueID, results)

	s.logger.Info().
		Str("league_id", query.LeagueID).
		Int("event_count", len(events)).
		Int("result_count", len(results)).
		Int("bet_count", bets).
		Dur("took", took).
		Msg("evaluated snapshot")

	return results, nil
}

// loadSnapshot returns the cached snapshot for filter, falling back to the provider
func (s *OpportunityService) loadSnapshot(ctx context.Context, filter models.SnapshotFilter, refresh bool) ([]models.EventSnapshot, error) {
	if s.cache != nil {
		if refresh {
			if err := s.cache.Invalidate(ctx, filter.LeagueID); err != nil {
				s.logger.Warn().Err(err).Str("league_id", filter.LeagueID).Msg("failed to invalidate cached snapshots")
			}
		} else {
			events, err := s.cache.Get(ctx, filter)
			switch {
			case err == nil:
				s.metrics.CacheLookup("hit")
				s.logger.Debug().Str("league_id", filter.LeagueID).Msg("cache hit for snapshot")
				return events, nil
			case errors.Is(err, cache.ErrCacheMiss):
				s.metrics.CacheLookup("miss")
			default:
				// Don't fail the request on cache errors
				s.metrics.CacheLookup("error")
				s.logger.Warn().Err(err).Str("league_id", filter.LeagueID).Msg("cache error, fetching from provider")
			}
		}
	}

	events, err := s.provider.FetchSnapshot(ctx, filter)
	s.metrics.ProviderRequest("events", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, filter, events); err != nil {
			s.logger.Warn().Err(err).Str("league_id", filter.LeagueID).Msg("failed to cache snapshot")
		}
	}

	return events, nil
}

// publish hands non-empty results to the publisher; failures are logged only
func (s *OpportunityService) publish(ctx context.Context, leagueID string, results []models.EvaluationResult) {
	if s.publisher == nil || len(results) == 0 {
		return
	}

	if err := s.publisher.Publish(ctx, leagueID, results); err != nil {
		s.logger.Warn().
			Err(err).
			Str("league_id", leagueID).
			Int("result_count", len(results)).
			Msg("failed to publish opportunities")
	}
}

// GetUsage returns the provider account usage as reported upstream
func (s *OpportunityService) GetUsage(ctx context.Context) (json.RawMessage, error) {
	usage, err := s.provider.FetchUsage(ctx)
	s.metrics.ProviderRequest("usage", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch usage: %w", err)
	}
	return usage, nil
}

// Sources returns the configured source registry in registration order
func (s *OpportunityService) Sources() []sources.Source {
	return s.registry.All()
}
