package models

// EventSnapshot represents one event as returned by the pricing provider
type EventSnapshot struct {
	EventID  string       `json:"event_id"`
	SportID  string       `json:"sport_id"`
	LeagueID string       `json:"league_id"`
	Type     string       `json:"type"`
	Home     *Participant `json:"home,omitempty"`
	Away     *Participant `json:"away,omitempty"`

	// Markets is keyed by market key. A nil map means the provider sent no odds.
	Markets map[string]*Market `json:"markets"`
}

// Participant describes one side of a team event
type Participant struct {
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// Market is a single bet (one side of one market) quoted by several sources
type Market struct {
	Name             string           `json:"name"`
	SideID           string           `json:"side_id"`
	FairPrice        *int             `json:"fair_price,omitempty"` // No-vig American price
	FairLine         *float64         `json:"fair_line,omitempty"`
	BookAveragePrice *int             `json:"book_average_price,omitempty"`
	BookAverageLine  *float64         `json:"book_average_line,omitempty"`
	BySource         map[string]Quote `json:"by_source"`
}

// Quote is a source's price for a market
type Quote struct {
	Price *int     `json:"price,omitempty"` // American odds, nil when missing or unparseable
	Line  *float64 `json:"line,omitempty"`
}

// LinesEqual reports whether two optional lines describe the same bet.
// Two absent lines are equal; an absent and a present line are not.
func LinesEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// SnapshotFilter holds the parameters sent to the provider when requesting a snapshot
type SnapshotFilter struct {
	Limit         int    `json:"limit"`
	SourceIDs     string `json:"source_ids"` // Comma-joined registry ids
	LeagueID      string `json:"league_id"`
	Finalized     bool   `json:"finalized"`
	OddsAvailable bool   `json:"odds_available"`
}

// OpportunityQuery selects which snapshot an opportunity search evaluates
type OpportunityQuery struct {
	LeagueID string
	Limit    int
	Refresh  bool // Bypass and invalidate cached snapshots for the league
}
