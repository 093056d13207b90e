package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/mattkeefer/sports-odds-backend/internal/models"
)

// KafkaPublisher publishes evaluated positive-EV opportunities to Kafka
type KafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// KafkaPublisherConfig holds Kafka publisher configuration
type KafkaPublisherConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "positive_ev_opportunities"
}

// NewKafkaPublisher creates a new Kafka publisher
func NewKafkaPublisher(config KafkaPublisherConfig, logger zerolog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{}, // Same league → same partition
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger.With().Str("component", "kafka_publisher").Logger(),
	}
}

// Publish writes one batch message for the results of a league. Empty batches are skipped.
func (p *KafkaPublisher) Publish(ctx context.Context, leagueID string, results []models.EvaluationResult) error {
	if len(results) == 0 {
		return nil
	}

	msg, batchID, err := buildMessage(leagueID, results, time.Now().UTC())
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	p.logger.Info().
		Str("batch_id", batchID.String()).
		Str("league_id", leagueID).
		Int("event_count", len(results)).
		Msg("published opportunities")

	return nil
}

// buildMessage encodes a batch message keyed by league
func buildMessage(leagueID string, results []models.EvaluationResult, now time.Time) (kafka.Message, uuid.UUID, error) {
	batch := models.OpportunityBatchMessage{
		BatchID:   uuid.New(),
		LeagueID:  leagueID,
		Results:   results,
		Timestamp: now,
	}

	value, err := json.Marshal(batch)
	if err != nil {
		return kafka.Message{}, uuid.Nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return kafka.Message{
		Key:   []byte(leagueID),
		Value: value,
		Time:  now,
	}, batch.BatchID, nil
}

// Close closes the Kafka writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
