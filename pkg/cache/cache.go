// Package cache provides a small JSON value cache on top of Redis. It backs
// the reporting summaries; a missing or failing cache only costs a
// recomputation, never correctness.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache connects to Redis using a redis:// URL.
func NewCache(redisURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	return &Cache{client: redis.NewClient(opts), ttl: ttl}, nil
}

// Get loads a cached value into dest. The second return is false on a miss.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	body, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	err = json.Unmarshal(body, dest)
	if err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}

	return true, nil
}

// Set stores a value under the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}

	err = c.client.Set(ctx, key, body, c.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}

	return nil
}

// Invalidate drops a key.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	err := c.client.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache key %s: %w", key, err)
	}

	return nil
}

func (c *Cache) HealthCheck(ctx context.Context) error {
	err := c.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
