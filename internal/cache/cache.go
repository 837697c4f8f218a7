package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/energoledger/energoledger/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrMiss is returned when a key is absent or caching is disabled.
var ErrMiss = errors.New("cache miss")

// Cache is a thin optional redis wrapper. When no REDIS_ADDR is configured
// every lookup is a miss and every write a no-op, so callers fall back to
// the database without special-casing.
type Cache struct {
	client *redis.Client
	log    *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Cache {
	c := &Cache{log: log.Named("cache")}
	if cfg.RedisAddr == "" {
		return c
	}
	c.client = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	return c
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest any) error {
	if !c.Enabled() {
		return ErrMiss
	}
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return ErrMiss
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.log.Warn("cache entry unreadable", zap.String("key", key), zap.Error(err))
		return ErrMiss
	}
	return nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache delete failed", zap.Error(err))
	}
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
