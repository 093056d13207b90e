package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mattkeefer/sports-odds-backend/internal/models"
)

// ErrCacheMiss is returned when no snapshot is cached for a filter
var ErrCacheMiss = errors.New("snapshot not found in cache")

// RedisCache caches provider snapshots in Redis so repeated requests do not spend provider quota
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., time.Minute
	Prefix   string        // e.g., "snapshots"
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "snapshots"
	}

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		prefix: prefix,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

// key builds the Redis key: {prefix}:{league}:{limit}:{finalized}:{odds_available}:{sources}
func (c *RedisCache) key(filter models.SnapshotFilter) string {
	return fmt.Sprintf("%s:%s:%d:%t:%t:%s",
		c.prefix, filter.LeagueID, filter.Limit, filter.Finalized, filter.OddsAvailable, filter.SourceIDs)
}

// Set caches the snapshot fetched for filter
func (c *RedisCache) Set(ctx context.Context, filter models.SnapshotFilter, events []models.EventSnapshot) error {
	key := c.key(filter)

	// Serialize to JSON
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	// Set in Redis with TTL
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Int("event_count", len(events)).
		Dur("ttl", c.ttl).
		Msg("cached snapshot")

	return nil
}

// Get retrieves the cached snapshot for filter
func (c *RedisCache) Get(ctx context.Context, filter models.SnapshotFilter) ([]models.EventSnapshot, error) {
	key := c.key(filter)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var events []models.EventSnapshot
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return events, nil
}

// Invalidate removes every cached snapshot for a league
func (c *RedisCache) Invalidate(ctx context.Context, leagueID string) error {
	pattern := fmt.Sprintf("%s:%s:*", c.prefix, leagueID)

	// Scan for keys matching pattern
	var cursor uint64
	var keys []string

	for {
		var scanKeys []string
		var err error
		scanKeys, cursor, err = c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}

		keys = append(keys, scanKeys...)

		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}

	c.logger.Info().
		Str("league_id", leagueID).
		Int("count", len(keys)).
		Msg("invalidated cached snapshots")

	return nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
