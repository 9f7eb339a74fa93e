package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/openblog/blog-api/internal/api/metrics"
	"github.com/openblog/blog-api/internal/core/ports"
)

const (
	statsCacheTTL    = 30 * time.Second
	keyStatsTotals   = "stats:totals"
	keyStatsDetailed = "stats:detailed"
)

// StatsCache caches stats payloads in Redis with a short TTL. Failures are
// logged and treated as misses; stats never fail because the cache is down.
type StatsCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client, log zerolog.Logger) *StatsCache {
	return &StatsCache{client: client, log: log}
}

func (c *StatsCache) GetTotals(ctx context.Context) (*ports.StatsTotals, bool) {
	var totals ports.StatsTotals
	if !c.get(ctx, keyStatsTotals, &totals) {
		return nil, false
	}
	return &totals, true
}

func (c *StatsCache) SetTotals(ctx context.Context, t *ports.StatsTotals) {
	c.set(ctx, keyStatsTotals, t)
}

func (c *StatsCache) GetDetailed(ctx context.Context) (*ports.DetailedStats, bool) {
	var detailed ports.DetailedStats
	if !c.get(ctx, keyStatsDetailed, &detailed) {
		return nil, false
	}
	return &detailed, true
}

func (c *StatsCache) SetDetailed(ctx context.Context, d *ports.DetailedStats) {
	c.set(ctx, keyStatsDetailed, d)
}

func (c *StatsCache) get(ctx context.Context, key string, dest any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("stats cache read failed")
		}
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("stats cache payload corrupt")
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		return false
	}
	metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
	return true
}

func (c *StatsCache) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("stats cache encode failed")
		return
	}
	if err := c.client.Set(ctx, key, raw, statsCacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("stats cache write failed")
	}
}
