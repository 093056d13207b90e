// Package provider fetches event snapshots and account usage from the remote pricing API.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mattkeefer/sports-odds-backend/internal/models"
)

// ErrUpstream wraps every failure reported by the provider
var ErrUpstream = errors.New("pricing provider request failed")

// Config holds provider client configuration
type Config struct {
	// e.g., "https://api.sportsgameodds.com/v2"
	BaseURL string
	APIKey  string

	// Per-request timeout
	Timeout    time.Duration
	MaxRetries int

	// Multiplied by the attempt number
	RetryDelay time.Duration
}

// Client provides access to the pricing provider API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     zerolog.Logger
}

// NewClient creates a new provider client
func NewClient(config Config, logger zerolog.Logger) *Client {
	if config.MaxRetries <= 0 {
		config.MaxRetries = 1
	}
	if config.RetryDelay < 0 {
		config.RetryDelay = 0
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
		logger:     logger.With().Str("component", "provider_client").Logger(),
	}
}

// envelope is the response wrapper used by every provider endpoint
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// FetchSnapshot retrieves the events matching filter
func (c *Client) FetchSnapshot(ctx context.Context, filter models.SnapshotFilter) ([]models.EventSnapshot, error) {
	query := url.Values{}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.SourceIDs != "" {
		query.Set("bookmakerID", filter.SourceIDs)
	}
	if filter.LeagueID != "" {
		query.Set("leagueID", filter.LeagueID)
	}
	query.Set("finalized", strconv.FormatBool(filter.Finalized))
	query.Set("oddsAvailable", strconv.FormatBool(filter.OddsAvailable))

	data, err := c.get(ctx, "/events", query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	var wire []wireEvent
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	events := make([]models.EventSnapshot, 0, len(wire))
	for _, we := range wire {
		events = append(events, we.toSnapshot())
	}

	c.logger.Debug().
		Str("league_id", filter.LeagueID).
		Int("limit", filter.Limit).
		Int("event_count", len(events)).
		Msg("fetched snapshot")

	return events, nil
}

// FetchUsage retrieves the account usage and rate-limit information as-is
func (c *Client) FetchUsage(ctx context.Context) (json.RawMessage, error) {
	data, err := c.get(ctx, "/account/usage", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch usage: %w", err)
	}
	return data, nil
}

// get performs a GET request with retry logic and unwraps the response envelope
func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		body, retry, err := c.doRequest(ctx, endpoint)
		if err == nil {
			return decodeEnvelope(body)
		}

		lastErr = err
		if !retry || attempt == c.maxRetries {
			break
		}

		c.logger.Warn().
			Err(err).
			Str("path", path).
			Int("attempt", attempt).
			Msg("provider request failed, retrying")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrUpstream, ctx.Err())
		case <-time.After(c.retryDelay * time.Duration(attempt)):
		}
	}

	return nil, lastErr
}

// doRequest performs a single request. The bool result reports whether the failure is retryable.
func (c *Client) doRequest(ctx context.Context, endpoint string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("%w: failed to read body: %v", ErrUpstream, err)
	}

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, false, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, errorMessage(body))
	}

	return body, false, nil
}

func decodeEnvelope(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrUpstream, err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "unsuccessful response"
		}
		return nil, fmt.Errorf("%w: %s", ErrUpstream, msg)
	}
	return env.Data, nil
}

func errorMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
		return env.Error
	}
	return strings.TrimSpace(string(body))
}
