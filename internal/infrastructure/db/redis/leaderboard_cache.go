package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

const leaderboardKey = "leaderboard:top"

// LeaderboardCache caches the computed leaderboard as a JSON blob with a
// short TTL, so repeated reads skip the Mongo aggregation.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &LeaderboardCache{client: client, ttl: ttl}
}

// Get returns the cached entries, or (nil, nil) on a miss.
func (c *LeaderboardCache) Get(ctx context.Context) ([]ports.LeaderboardEntry, error) {
	raw, err := c.client.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("leaderboard get: %w", err)
	}

	var entries []ports.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("leaderboard decode: %w", err)
	}
	return entries, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, entries []ports.LeaderboardEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("leaderboard encode: %w", err)
	}
	return c.client.Set(ctx, leaderboardKey, raw, c.ttl).Err()
}
