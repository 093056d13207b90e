package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EvaluationParams holds the caller-supplied filters and sizing inputs
type EvaluationParams struct {
	MinPrice        int     // Inclusive lower price bound
	MaxPrice        int     // Inclusive upper price bound
	MinEV           float64 // EV must be strictly greater than this
	CompareToSource string  // Reference source id; empty means compare to the fair price
	Bankroll        float64
	KellyFraction   float64 // (0, 1], 0.25 = quarter Kelly

	// IncludeEqualPrice admits candidates priced exactly at the reference price
	IncludeEqualPrice bool
}

// ReferenceKind tags where a reference price came from
type ReferenceKind string

const (
	ReferenceFair   ReferenceKind = "fair"
	ReferenceSource ReferenceKind = "source"
)

// Reference is the price/line every candidate quote was measured against
type Reference struct {
	Kind     ReferenceKind `json:"kind"`
	SourceID string        `json:"source_id,omitempty"`
	Price    int           `json:"price"`
	Line     *float64      `json:"line,omitempty"`
}

// EvaluationResult mirrors an event snapshot with only its positive-EV markets
type EvaluationResult struct {
	EventID       string                       `json:"event_id"`
	SportID       string                       `json:"sport_id"`
	LeagueID      string                       `json:"league_id"`
	Type          string                       `json:"type"`
	Home          *Participant                 `json:"home,omitempty"`
	Away          *Participant                 `json:"away,omitempty"`
	Opportunities map[string]MarketOpportunity `json:"opportunities"`
}

// BetCount returns the number of positive-EV bets across all markets
func (r *EvaluationResult) BetCount() int {
	n := 0
	for _, opp := range r.Opportunities {
		n += len(opp.Bets)
	}
	return n
}

// MarketOpportunity describes a market with at least one positive-EV bet
type MarketOpportunity struct {
	MarketName       string                   `json:"market_name"`
	SideID           string                   `json:"side_id"`
	FairPrice        *int                     `json:"fair_price,omitempty"`
	FairLine         *float64                 `json:"fair_line,omitempty"`
	BookAveragePrice *int                     `json:"book_average_price,omitempty"`
	BookAverageLine  *float64                 `json:"book_average_line,omitempty"`
	Reference        Reference                `json:"reference"`
	Bets             map[string]PositiveEVBet `json:"bets"`
}

// PositiveEVBet is a single source quote that beats the reference
type PositiveEVBet struct {
	SourceName string          `json:"source_name"`
	Price      int             `json:"price"`
	Line       *float64        `json:"line,omitempty"`
	EV         float64         `json:"ev"`    // 0 = breakeven
	Stake      decimal.Decimal `json:"stake"` // Fractional Kelly stake, rounded to cents
}

// OpportunityBatchMessage is the Kafka message published for each evaluated batch
type OpportunityBatchMessage struct {
	BatchID   uuid.UUID          `json:"batch_id"`
	LeagueID  string             `json:"league_id"`
	Results   []EvaluationResult `json:"results"`
	Timestamp time.Time          `json:"timestamp"`
}
