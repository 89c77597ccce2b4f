package seminars

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/seminarhub/backend/internal/models"
)

// Cache is a Redis read cache for seminar point lookups. All methods are
// best-effort and nil-receiver safe: a cache miss, a Redis fault, or no cache
// at all simply sends the caller to the store.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCache creates a seminar cache.
func NewCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{rdb: rdb, ttl: ttl, logger: logger}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("seminar:%d", id)
}

// Get returns the cached seminar or nil.
func (c *Cache) Get(ctx context.Context, id int64) *models.Seminar {
	if c == nil {
		return nil
	}
	raw, err := c.rdb.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var sem models.Seminar
	if err := json.Unmarshal(raw, &sem); err != nil {
		c.logger.Warn("seminar cache decode failed", zap.Int64("seminar_id", id), zap.Error(err))
		return nil
	}
	return &sem
}

// Set stores a seminar with the configured TTL.
func (c *Cache) Set(ctx context.Context, sem *models.Seminar) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(sem)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(sem.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("seminar cache set failed", zap.Int64("seminar_id", sem.ID), zap.Error(err))
	}
}

// Invalidate drops a seminar from the cache after an update or delete.
func (c *Cache) Invalidate(ctx context.Context, id int64) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, cacheKey(id)).Err(); err != nil {
		c.logger.Warn("seminar cache invalidate failed", zap.Int64("seminar_id", id), zap.Error(err))
	}
}
