// Package cache implements the cache-aside gateway for summarized menus.
// Entries are keyed by calendar day and source URL, so a URL can have at
// most one entry per day; yesterday's entries die with the date component
// and the TTL bounds same-day staleness.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Soptik1290/restaurant-menu-summarizer/config"
	"github.com/Soptik1290/restaurant-menu-summarizer/types"
)

// Client describes the minimal Redis functionality required by the store.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store reads and writes MenuResult values under date+URL keys.
type Store struct {
	client Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewStore wraps a Redis client with the menu key schema and TTL.
func NewStore(client Client, log zerolog.Logger) *Store {
	return &Store{
		client: client,
		ttl:    config.CacheTTL,
		log:    log.With().Str("component", "cache").Logger(),
	}
}

// Key derives the cache key for a calendar day and source URL.
func Key(day time.Time, sourceURL string) string {
	return fmt.Sprintf("%s:%s:%s", config.CacheKeyPrefix, day.Format("2006-01-02"), sourceURL)
}

// Get returns the cached result for (day, url), or ok=false on a miss.
// A corrupt entry is deleted and reported as a miss rather than served.
func (s *Store) Get(ctx context.Context, day time.Time, sourceURL string) (*types.MenuResult, bool, error) {
	key := Key(day, sourceURL)
	raw, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var result types.MenuResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.log.Warn().Str("key", key).Err(err).Msg("Dropping corrupt cache entry")
		if delErr := s.client.Del(ctx, key).Err(); delErr != nil {
			s.log.Warn().Str("key", key).Err(delErr).Msg("Failed to delete corrupt cache entry")
		}
		return nil, false, nil
	}
	return &result, true, nil
}

// Set writes the result under (day, url) with the configured TTL.
func (s *Store) Set(ctx context.Context, day time.Time, sourceURL string, result *types.MenuResult) error {
	key := Key(day, sourceURL)
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate removes the entry for (day, url). It is called on every
// pipeline failure so a failed run never leaves a stale prior entry behind.
// Deletion errors are logged, not returned: cleanup must not mask the
// failure being propagated.
func (s *Store) Invalidate(ctx context.Context, day time.Time, sourceURL string) {
	key := Key(day, sourceURL)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.log.Warn().Str("key", key).Err(err).Msg("Failed to invalidate cache key")
	}
}
