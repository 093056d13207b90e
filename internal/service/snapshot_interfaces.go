package service

import (
	"context"
	"encoding/json"

	"github.com/mattkeefer/sports-odds-backend/internal/models"
)

// SnapshotProvider is an interface that abstracts the remote pricing provider
// This allows for easier testing and mocking
type SnapshotProvider interface {
	FetchSnapshot(ctx context.Context, filter models.SnapshotFilter) ([]models.EventSnapshot, error)
	FetchUsage(ctx context.Context) (json.RawMessage, error)
}

// SnapshotCache is an interface that abstracts snapshot cache operations
type SnapshotCache interface {
	Get(ctx context.Context, filter models.SnapshotFilter) ([]models.EventSnapshot, error)
	Set(ctx context.Context, filter models.SnapshotFilter, events []models.EventSnapshot) error
	Invalidate(ctx context.Context, leagueID string) error
	Ping(ctx context.Context) error
	Close() error
}

// OpportunityPublisher is an interface that abstracts publishing evaluated results
type OpportunityPublisher interface {
	Publish(ctx context.Context, leagueID string, results []models.EvaluationResult) error
	Close() error
}
