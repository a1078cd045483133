package persistence

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// ScreenCache stores one cached value per dashboard screen, keyed by a
// versioned name. All operations are best-effort: misses and Redis errors
// look the same to callers, who then fall back to a live fetch.
type ScreenCache struct {
	redis  *Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewScreenCache builds the cache. A nil redis disables it entirely.
func NewScreenCache(redis *Redis, ttl time.Duration, logger *zap.Logger) *ScreenCache {
	return &ScreenCache{redis: redis, ttl: ttl, logger: logger}
}

// Get loads the cached value for key into v. Returns false on miss,
// disabled cache, or decode failure.
func (c *ScreenCache) Get(ctx context.Context, key string, v any) bool {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return false
	}
	raw, err := c.redis.Client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		c.logger.Warn("drop corrupt cache entry", zap.String("key", key), zap.Error(err))
		_ = c.redis.Client.Del(ctx, key).Err()
		return false
	}
	return true
}

// Set stores v under key with the configured TTL.
func (c *ScreenCache) Set(ctx context.Context, key string, v any) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.redis.Client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("cache write skipped", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops the cached value for key.
func (c *ScreenCache) Invalidate(ctx context.Context, key string) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	_ = c.redis.Client.Del(ctx, key).Err()
}
