package evaluator

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mattkeefer/sports-odds-backend/internal/models"
	"github.com/mattkeefer/sports-odds-backend/internal/sources"
	"github.com/mattkeefer/sports-odds-backend/pkg/oddsmath"
)

// Evaluator finds quotes that beat a reference price and sizes a stake for each
type Evaluator struct {
	registry *sources.Registry
	logger   zerolog.Logger
}

// NewEvaluator creates a new market evaluator restricted to the sources in registry
func NewEvaluator(registry *sources.Registry, logger zerolog.Logger) *Evaluator {
	return &Evaluator{
		registry: registry,
		logger:   logger.With().Str("component", "evaluator").Logger(),
	}
}

// candidate is a registry source whose quote passed the price and line filters
type candidate struct {
	sourceID string
	price    int
	line     *float64
}

// Evaluate returns the positive-EV opportunities of a single event.
// It returns nil when there is nothing to evaluate (nil event or no market mapping).
// The returned result may have no opportunities; callers discard those.
func (e *Evaluator) Evaluate(event *models.EventSnapshot, params models.EvaluationParams) *models.EvaluationResult {
	if event == nil || event.Markets == nil {
		return nil
	}

	result := &models.EvaluationResult{
		EventID:       event.EventID,
		SportID:       event.SportID,
		LeagueID:      event.LeagueID,
		Type:          event.Type,
		Home:          cloneParticipant(event.Home),
		Away:          cloneParticipant(event.Away),
		Opportunities: make(map[string]models.MarketOpportunity),
	}

	keys := make([]string, 0, len(event.Markets))
	for key := range event.Markets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		opp, ok := e.evaluateMarket(event.EventID, key, event.Markets[key], params)
		if ok {
			result.Opportunities[key] = opp
		}
	}

	return result
}

// EvaluateAll evaluates every event independently and keeps only results with opportunities.
// Output order follows input order.
func (e *Evaluator) EvaluateAll(events []models.EventSnapshot, params models.EvaluationParams) []models.EvaluationResult {
	evaluated := make([]*models.EvaluationResult, len(events))

	var wg sync.WaitGroup
	for i := range events {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			evaluated[i] = e.Evaluate(&events[i], params)
		}(i)
	}
	wg.Wait()

	results := make([]models.EvaluationResult, 0, len(events))
	for _, r := range evaluated {
		if r == nil || len(r.Opportunities) == 0 {
			continue
		}
		results = append(results, *r)
	}

	e.logger.Debug().
		Int("input_count", len(events)).
		Int("output_count", len(results)).
		Msg("batch evaluation complete")

	return results
}

// evaluateMarket builds the opportunity for one market, or reports false when it has none
func (e *Evaluator) evaluateMarket(eventID, key string, market *models.Market, params models.EvaluationParams) (models.MarketOpportunity, bool) {
	if market == nil {
		return models.MarketOpportunity{}, false
	}

	ref, ok := resolveReference(market, params)
	if !ok {
		e.logger.Debug().
			Str("event_id", eventID).
			Str("market", key).
			Str("compare_to", params.CompareToSource).
			Msg("no reference price, skipping market")
		return models.MarketOpportunity{}, false
	}

	if market.BySource == nil {
		return models.MarketOpportunity{}, false
	}

	candidates := e.selectCandidates(market, ref, params)
	if len(candidates) == 0 {
		return models.MarketOpportunity{}, false
	}

	bets := make(map[string]models.PositiveEVBet, len(candidates))
	for _, c := range candidates {
		ev, err := oddsmath.ExpectedValue(ref.Price, c.price)
		if err != nil {
			e.logger.Debug().
				Err(err).
				Str("event_id", eventID).
				Str("market", key).
				Str("source", c.sourceID).
				Msg("failed to compute EV")
			continue
		}

		if ev <= params.MinEV {
			continue
		}

		stake, err := oddsmath.KellyStake(params.Bankroll, c.price, ref.Price, params.KellyFraction)
		if err != nil {
			e.logger.Debug().
				Err(err).
				Str("event_id", eventID).
				Str("market", key).
				Str("source", c.sourceID).
				Msg("failed to compute Kelly stake")
			continue
		}

		name, _ := e.registry.Name(c.sourceID)
		bets[c.sourceID] = models.PositiveEVBet{
			SourceName: name,
			Price:      c.price,
			Line:       cloneFloat(c.line),
			EV:         ev,
			Stake:      decimal.NewFromFloat(stake).Round(2),
		}
	}

	if len(bets) == 0 {
		return models.MarketOpportunity{}, false
	}

	return models.MarketOpportunity{
		MarketName:       market.Name,
		SideID:           market.SideID,
		FairPrice:        cloneInt(market.FairPrice),
		FairLine:         cloneFloat(market.FairLine),
		BookAveragePrice: cloneInt(market.BookAveragePrice),
		BookAverageLine:  cloneFloat(market.BookAverageLine),
		Reference:        ref,
		Bets:             bets,
	}, true
}

// resolveReference picks the fair price or the chosen source's quote
func resolveReference(market *models.Market, params models.EvaluationParams) (models.Reference, bool) {
	if params.CompareToSource == "" {
		if market.FairPrice == nil || *market.FairPrice == 0 {
			return models.Reference{}, false
		}
		return models.Reference{
			Kind:  models.ReferenceFair,
			Price: *market.FairPrice,
			Line:  cloneFloat(market.FairLine),
		}, true
	}

	quote, ok := market.BySource[params.CompareToSource]
	if !ok || quote.Price == nil || *quote.Price == 0 {
		return models.Reference{}, false
	}

	return models.Reference{
		Kind:     models.ReferenceSource,
		SourceID: params.CompareToSource,
		Price:    *quote.Price,
		Line:     cloneFloat(quote.Line),
	}, true
}

// selectCandidates applies the registry, price and line filters, in source id order
func (e *Evaluator) selectCandidates(market *models.Market, ref models.Reference, params models.EvaluationParams) []candidate {
	ids := make([]string, 0, len(market.BySource))
	for id := range market.BySource {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []candidate
	for _, id := range ids {
		if !e.registry.Contains(id) {
			continue
		}
		if ref.Kind == models.ReferenceSource && id == ref.SourceID {
			continue
		}

		quote := market.BySource[id]
		if quote.Price == nil || *quote.Price == 0 {
			continue
		}
		price := *quote.Price

		if !beatsReference(price, ref.Price, params.IncludeEqualPrice) {
			continue
		}
		if price < params.MinPrice || price > params.MaxPrice {
			continue
		}
		if !models.LinesEqual(quote.Line, ref.Line) {
			continue
		}

		out = append(out, candidate{sourceID: id, price: price, line: quote.Line})
	}

	return out
}

func beatsReference(price, reference int, includeEqual bool) bool {
	if includeEqual {
		return price >= reference
	}
	return price > reference
}

func cloneParticipant(p *models.Participant) *models.Participant {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
