package http

//go:generate mockgen -source=opportunity_handler.go -destination=../../mocks/mock_opportunity_service.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mattkeefer/sports-odds-backend/internal/models"
	"github.com/mattkeefer/sports-odds-backend/internal/sources"
)

// OpportunityService is the service surface used by the HTTP layer
type OpportunityService interface {
	FindOpportunities(ctx context.Context, query models.OpportunityQuery, params models.EvaluationParams) ([]models.EvaluationResult, error)
	GetUsage(ctx context.Context) (json.RawMessage, error)
	Sources() []sources.Source
}

// Defaults are applied to every query parameter the caller omits
type Defaults struct {
	League string
	Limit  int
	Params models.EvaluationParams
}

// OpportunityHandler handles HTTP requests for positive-EV opportunities
type OpportunityHandler struct {
	service  OpportunityService
	defaults Defaults
	logger   zerolog.Logger
}

// NewOpportunityHandler creates a new opportunity HTTP handler
func NewOpportunityHandler(service OpportunityService, defaults Defaults, logger zerolog.Logger) *OpportunityHandler {
	return &OpportunityHandler{
		service:  service,
		defaults: defaults,
		logger:   logger.With().Str("component", "opportunity_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided router
func (h *OpportunityHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		// GET /api/v1/opportunities?league=NBA&minPrice=-400&maxPrice=300&compareTo=pinnacle
		r.Get("/opportunities", h.handleGetOpportunities)
		r.Get("/usage", h.handleGetUsage)
		r.Get("/sources", h.handleGetSources)
	})
}

// OpportunitiesResponse is the body returned by GET /api/v1/opportunities
type OpportunitiesResponse struct {
	League string                    `json:"league"`
	Count  int                       `json:"count"`
	Events []models.EvaluationResult `json:"events"`
}

// handleGetOpportunities handles GET /api/v1/opportunities
func (h *OpportunityHandler) handleGetOpportunities(w http.ResponseWriter, r *http.Request) {
	query, params, err := h.parseQuery(r.URL.Query())
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.service.FindOpportunities(r.Context(), query, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("league_id", query.LeagueID).
			Msg("failed to find opportunities")
		h.errorResponse(w, http.StatusBadGateway, "failed to fetch odds from provider")
		return
	}

	if results == nil {
		results = []models.EvaluationResult{}
	}

	h.jsonResponse(w, http.StatusOK, OpportunitiesResponse{
		League: query.LeagueID,
		Count:  len(results),
		Events: results,
	})
}

// handleGetUsage handles GET /api/v1/usage
func (h *OpportunityHandler) handleGetUsage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.service.GetUsage(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch usage")
		h.errorResponse(w, http.StatusBadGateway, "failed to fetch usage from provider")
		return
	}

	h.jsonResponse(w, http.StatusOK, usage)
}

// handleGetSources handles GET /api/v1/sources
func (h *OpportunityHandler) handleGetSources(w http.ResponseWriter, r *http.Request) {
	list := h.service.Sources()

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"count":   len(list),
		"sources": list,
	})
}

// parseQuery applies defaults and validates the opportunity query string
func (h *OpportunityHandler) parseQuery(values url.Values) (models.OpportunityQuery, models.EvaluationParams, error) {
	query := models.OpportunityQuery{
		LeagueID: h.defaults.League,
		Limit:    h.defaults.Limit,
	}
	params := h.defaults.Params

	if v := values.Get("league"); v != "" {
		query.LeagueID = v
	}
	if v := values.Get("compareTo"); v != "" {
		params.CompareToSource = v
	}

	var errs []error
	errs = append(errs,
		parseInt(values, "limit", &query.Limit),
		parseInt(values, "minPrice", &params.MinPrice),
		parseInt(values, "maxPrice", &params.MaxPrice),
		parseFloat(values, "minEV", &params.MinEV),
		parseFloat(values, "bankroll", &params.Bankroll),
		parseFloat(values, "kellyFraction", &params.KellyFraction),
		parseBool(values, "includeEqual", &params.IncludeEqualPrice),
		parseBool(values, "refresh", &query.Refresh),
	)
	if err := errors.Join(errs...); err != nil {
		return query, params, err
	}

	switch {
	case query.LeagueID == "":
		return query, params, errors.New("league is required")
	case query.Limit <= 0:
		return query, params, errors.New("limit must be positive")
	case params.MinPrice > params.MaxPrice:
		return query, params, fmt.Errorf("minPrice %d is greater than maxPrice %d", params.MinPrice, params.MaxPrice)
	case params.Bankroll <= 0:
		return query, params, errors.New("bankroll must be positive")
	case params.KellyFraction <= 0 || params.KellyFraction > 1:
		return query, params, errors.New("kellyFraction must be between 0 and 1")
	}

	return query, params, nil
}

func parseInt(values url.Values, name string, dst *int) error {
	raw := values.Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s must be an integer", name)
	}
	*dst = v
	return nil
}

func parseFloat(values url.Values, name string, dst *float64) error {
	raw := values.Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a number", name)
	}
	*dst = v
	return nil
}

func parseBool(values url.Values, name string, dst *bool) error {
	raw := values.Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%s must be a boolean", name)
	}
	*dst = v
	return nil
}

// jsonResponse writes a JSON response
func (h *OpportunityHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *OpportunityHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
