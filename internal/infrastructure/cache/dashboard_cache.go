package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tradeboard/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const dashboardKeyPrefix = "dashboard:snapshot:"

// DashboardCache stores serialized dashboard snapshots in Redis with a
// TTL. A nil client disables caching: every lookup is a miss and writes
// are dropped, so callers never need to branch on availability.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewDashboardCache connects to Redis and returns a dashboard cache
func NewDashboardCache(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*DashboardCache, error) {
	if !cfg.Enabled {
		return NewDashboardCacheWithClient(nil, ttl, logger), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewDashboardCacheWithClient(client, ttl, logger), nil
}

// NewDashboardCacheWithClient creates a cache around an existing client.
// Pass a nil client to disable caching.
func NewDashboardCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *DashboardCache {
	return &DashboardCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Key builds the cache key for a dashboard date range
func Key(start, end time.Time) string {
	return dashboardKeyPrefix + start.Format("2006-01-02") + ":" + end.Format("2006-01-02")
}

// Get loads a cached snapshot into dest, reporting whether it was found.
// Redis failures degrade to a miss.
func (c *DashboardCache) Get(ctx context.Context, key string, dest any) bool {
	if c.client == nil {
		return false
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("dashboard cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		c.logger.Warn("dashboard cache entry corrupted", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores a snapshot under the key with the configured TTL.
// Failures are logged, never propagated.
func (c *DashboardCache) Set(ctx context.Context, key string, value any) {
	if c.client == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("dashboard cache serialization failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every cached dashboard snapshot. Called after writes
// that change the underlying figures.
func (c *DashboardCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, dashboardKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("dashboard cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

// Close releases the underlying client
func (c *DashboardCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
