// Package cache provides a thin read-cache over redis for hot catalog
// lookups. The snapshot store stays the source of truth; cache misses and
// cache failures always fall through to it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheMiss         = errors.New("cache miss")
)

// DefaultTTL bounds staleness for catalog reads.
const DefaultTTL = 5 * time.Minute

// CacheHelper wraps a redis client with JSON marshalling and key prefixing.
// A nil client disables caching; every method then reports
// ErrCacheNotAvailable and callers fall through to the store.
type CacheHelper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewCacheHelper(client *redis.Client, prefix string) *CacheHelper {
	return &CacheHelper{client: client, prefix: prefix, ttl: DefaultTTL}
}

func (c *CacheHelper) key(key string) string {
	return c.prefix + ":" + key
}

// Get retrieves and unmarshals a cached value into dest.
func (c *CacheHelper) Get(ctx context.Context, key string, dest interface{}) error {
	if c == nil || c.client == nil {
		return ErrCacheNotAvailable
	}
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get failed: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache decode failed: %w", err)
	}
	return nil
}

// Set marshals and stores a value under the helper's TTL.
func (c *CacheHelper) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil || c.client == nil {
		return ErrCacheNotAvailable
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode failed: %w", err)
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

// Delete drops one or more cached keys.
func (c *CacheHelper) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil {
		return ErrCacheNotAvailable
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("cache delete failed: %w", err)
	}
	return nil
}
