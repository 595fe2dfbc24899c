// Package cache holds the Redis-backed read caches. Everything here is
// best-effort: a cache failure must never fail the request.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"
)

// StatsCache caches per-candidate application stats summaries.
type StatsCache struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewStatsCache returns nil when no Redis client is available, which callers
// treat as "no cache".
func NewStatsCache(client *goredis.Client, ttl time.Duration) *StatsCache {
	if client == nil {
		return nil
	}
	return &StatsCache{client: client, ttl: ttl}
}

func statsKey(candidateProfileID int64) string {
	return fmt.Sprintf("stats:applications:%d", candidateProfileID)
}

func (c *StatsCache) Get(ctx context.Context, candidateProfileID int64) (*domain.ApplicationStats, bool) {
	data, err := c.client.Get(ctx, statsKey(candidateProfileID)).Bytes()
	if err != nil {
		return nil, false
	}
	var stats domain.ApplicationStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, candidateProfileID int64, stats *domain.ApplicationStats) {
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey(candidateProfileID), data, c.ttl).Err(); err != nil {
		logger.Log.Warn("stats cache set failed", zap.Error(err))
	}
}

func (c *StatsCache) Invalidate(ctx context.Context, candidateProfileID int64) {
	if err := c.client.Del(ctx, statsKey(candidateProfileID)).Err(); err != nil {
		logger.Log.Warn("stats cache invalidate failed", zap.Error(err))
	}
}
