package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
	apperrors "github.com/lorrc/support-analytics/internal/core/errors"
	"github.com/lorrc/support-analytics/internal/core/ports"
)

// ResultCache stores JSON-encoded analytics results in Redis.
type ResultCache struct {
	client *goredis.Client
}

var _ ports.ResultCache = (*ResultCache)(nil)

// Config holds the Redis connection settings.
type Config struct {
	URL         string
	DialTimeout time.Duration
}

// NewResultCache connects to Redis and verifies the connection.
func NewResultCache(ctx context.Context, cfg Config) (*ResultCache, error) {
	opt, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if cfg.DialTimeout > 0 {
		opt.DialTimeout = cfg.DialTimeout
	}

	client := goredis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ResultCache{client: client}, nil
}

// Get decodes the value stored at key into dest.
func (c *ResultCache) Get(ctx context.Context, key string, dest any) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return apperrors.ErrCacheMiss
		}
		return fmt.Errorf("failed to read cache key %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode cache key %q: %w", key, err)
	}
	return nil
}

// Set stores value at key with the given expiry.
func (c *ResultCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}

	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %q: %w", key, err)
	}
	return nil
}

// Ping is used by the readiness probe.
func (c *ResultCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ResultCache) Close() error {
	return c.client.Close()
}
