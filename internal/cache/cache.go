// Package cache keeps computed metric documents in Redis.
//
// Entries are namespaced by a generation counter. Invalidate bumps the
// counter, which orphans every earlier entry at once; orphans expire by TTL.
// A nil *MetricsCache is valid and behaves as an always-empty cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "metrics"
	DefaultTTL    = 5 * time.Minute
)

// NewClient parses a redis:// URL and verifies the server answers.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// MetricsCache stores JSON documents under generation-scoped keys.
type MetricsCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewMetricsCache returns a cache on client. A non-positive ttl means DefaultTTL.
func NewMetricsCache(client *redis.Client, ttl time.Duration) *MetricsCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MetricsCache{client: client, ttl: ttl, prefix: defaultPrefix}
}

func (c *MetricsCache) genKey() string {
	return c.prefix + ":gen"
}

func (c *MetricsCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read cache generation: %w", err)
	}
	return gen, nil
}

func (c *MetricsCache) entryKey(gen int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", c.prefix, gen, key)
}

// Get decodes the entry for key into dst. It also returns the generation the
// lookup ran under; pass it to Set so a document computed from data read
// before an Invalidate is stored in the orphaned generation. A miss returns
// (false, gen, nil).
func (c *MetricsCache) Get(ctx context.Context, key string, dst any) (bool, int64, error) {
	if c == nil {
		return false, 0, nil
	}
	gen, err := c.generation(ctx)
	if err != nil {
		return false, 0, err
	}
	b, err := c.client.Get(ctx, c.entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, gen, nil
	}
	if err != nil {
		return false, gen, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, gen, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return true, gen, nil
}

// Set stores v as JSON under key in generation gen for the cache TTL.
func (c *MetricsCache) Set(ctx context.Context, key string, gen int64, v any) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.entryKey(gen, key), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate drops every cached document.
func (c *MetricsCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.client.Incr(ctx, c.genKey()).Err(); err != nil {
		return fmt.Errorf("bump cache generation: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *MetricsCache) Ping(ctx context.Context) error {
	if c == nil {
		return errors.New("cache not configured")
	}
	return c.client.Ping(ctx).Err()
}
