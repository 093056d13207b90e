package provider

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mattkeefer/sports-odds-backend/internal/models"
)

// flexString accepts a JSON string, number or null
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

type wireEvent struct {
	EventID  string                `json:"eventID"`
	SportID  string                `json:"sportID"`
	LeagueID string                `json:"leagueID"`
	Type     string                `json:"type"`
	Teams    *wireTeams            `json:"teams"`
	Odds     map[string]wireMarket `json:"odds"`
}

type wireTeams struct {
	Home *wireTeam `json:"home"`
	Away *wireTeam `json:"away"`
}

type wireTeam struct {
	Names struct {
		Long string `json:"long"`
	} `json:"names"`
	Colors struct {
		Primary string `json:"primary"`
	} `json:"colors"`
}

type wireMarket struct {
	MarketName    string               `json:"marketName"`
	SideID        string               `json:"sideID"`
	FairOdds      flexString           `json:"fairOdds"`
	FairOverUnder flexString           `json:"fairOverUnder"`
	FairSpread    flexString           `json:"fairSpread"`
	BookOdds      flexString           `json:"bookOdds"`
	BookOverUnder flexString           `json:"bookOverUnder"`
	BookSpread    flexString           `json:"bookSpread"`
	ByBookmaker   map[string]wireQuote `json:"byBookmaker"`
}

type wireQuote struct {
	Odds      flexString `json:"odds"`
	OverUnder flexString `json:"overUnder"`
	Spread    flexString `json:"spread"`
	Available *bool      `json:"available"`
}

func (we wireEvent) toSnapshot() models.EventSnapshot {
	snap := models.EventSnapshot{
		EventID:  we.EventID,
		SportID:  we.SportID,
		LeagueID: we.LeagueID,
		Type:     we.Type,
	}

	if we.Teams != nil {
		snap.Home = we.Teams.Home.toParticipant()
		snap.Away = we.Teams.Away.toParticipant()
	}

	if we.Odds == nil {
		return snap
	}

	snap.Markets = make(map[string]*models.Market, len(we.Odds))
	for key, wm := range we.Odds {
		snap.Markets[key] = wm.toMarket()
	}

	return snap
}

func (wt *wireTeam) toParticipant() *models.Participant {
	if wt == nil || (wt.Names.Long == "" && wt.Colors.Primary == "") {
		return nil
	}
	return &models.Participant{Name: wt.Names.Long, Color: wt.Colors.Primary}
}

func (wm wireMarket) toMarket() *models.Market {
	m := &models.Market{
		Name:             wm.MarketName,
		SideID:           wm.SideID,
		FairPrice:        parsePrice(wm.FairOdds),
		FairLine:         parseLine(wm.FairOverUnder, wm.FairSpread),
		BookAveragePrice: parsePrice(wm.BookOdds),
		BookAverageLine:  parseLine(wm.BookOverUnder, wm.BookSpread),
	}

	if wm.ByBookmaker == nil {
		return m
	}

	m.BySource = make(map[string]models.Quote, len(wm.ByBookmaker))
	for id, wq := range wm.ByBookmaker {
		// Quotes the provider flags as unavailable are stale
		if wq.Available != nil && !*wq.Available {
			continue
		}
		m.BySource[id] = models.Quote{
			Price: parsePrice(wq.Odds),
			Line:  parseLine(wq.OverUnder, wq.Spread),
		}
	}

	return m
}

// parsePrice parses an American price such as "+150" or "-110"; nil when missing or non-numeric
func parsePrice(s flexString) *int {
	v := strings.TrimPrefix(strings.TrimSpace(string(s)), "+")
	if v == "" {
		return nil
	}
	price, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &price
}

// parseLine returns the first parseable value among the over/under and spread fields
func parseLine(values ...flexString) *float64 {
	for _, s := range values {
		v := strings.TrimPrefix(strings.TrimSpace(string(s)), "+")
		if v == "" {
			continue
		}
		line, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		return &line
	}
	return nil
}
