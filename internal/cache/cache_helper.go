package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheNotFound     = errors.New("cache not found")
)

// CacheHelper wraps a redis client with JSON marshaling and a key
// prefix. A nil client is valid: reads answer ErrCacheNotAvailable and
// writes become no-ops, so callers never branch on whether Redis is
// configured.
type CacheHelper struct {
	client *redis.Client
	prefix string
}

func NewCacheHelper(client *redis.Client, prefix string) *CacheHelper {
	return &CacheHelper{
		client: client,
		prefix: prefix,
	}
}

// CacheConfig pairs a key prefix with the TTL its entries live for.
type CacheConfig struct {
	TTL    time.Duration
	Prefix string
}

var (
	// Course catalog changes rarely, so listings can live a while
	CourseCacheConfig = CacheConfig{
		TTL:    5 * time.Minute,
		Prefix: "course:",
	}

	// Short-lived cache for anything else. User credentials are never
	// cached at all.
	FastCacheConfig = CacheConfig{
		TTL:    1 * time.Minute,
		Prefix: "fast:",
	}
)

func (c *CacheHelper) prefixedKey(key string) string {
	return c.prefix + key
}

// Get reads and unmarshals a cached value into dest.
func (c *CacheHelper) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrCacheNotAvailable
	}

	data, err := c.client.Get(ctx, c.prefixedKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCacheNotFound
	}
	if err != nil {
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}
	return nil
}

// Set marshals and stores a value under the prefixed key.
func (c *CacheHelper) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	return c.client.Set(ctx, c.prefixedKey(key), data, ttl).Err()
}

// Delete removes one or more keys.
func (c *CacheHelper) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = c.prefixedKey(key)
	}
	return c.client.Del(ctx, full...).Err()
}

// InvalidatePattern deletes every key matching the glob pattern. Keys
// are discovered with SCAN rather than KEYS and deleted page by page,
// so large keyspaces never block the server.
func (c *CacheHelper) InvalidatePattern(ctx context.Context, pattern string) error {
	if c.client == nil {
		return nil
	}

	fullPattern := c.prefixedKey(pattern)
	var cursor uint64
	for {
		page, next, err := c.client.Scan(ctx, cursor, fullPattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan error: %w", err)
		}
		if len(page) > 0 {
			if err := c.client.Del(ctx, page...).Err(); err != nil {
				return fmt.Errorf("cache delete error: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// CacheOrExecute is the cache-aside read path: answer from cache when
// possible, otherwise run fetch and fill dest from its result. The
// write-back happens on a goroutine so a slow Redis never delays the
// response.
func (c *CacheHelper) CacheOrExecute(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() (interface{}, error)) error {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheNotFound) && !errors.Is(err, ErrCacheNotAvailable) {
		slog.InfoContext(ctx, "Cache read failed, fetching from source", "error", err, "key", key)
	}

	value, err := fetch()
	if err != nil {
		return fmt.Errorf("fetch function error: %w", err)
	}

	go func(parent context.Context) {
		writeCtx, cancel := context.WithTimeout(parent, 5*time.Second)
		defer cancel()
		if err := c.Set(writeCtx, key, value, ttl); err != nil {
			slog.Error("Cache write-back failed", "error", err, "key", key)
		}
	}(ctx)

	// Round-trip through JSON so dest gets the same shape a cache hit
	// would have produced.
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal result error: %w", err)
	}
	return json.Unmarshal(data, dest)
}

// CacheManager bundles the prefixed helpers the repositories share.
type CacheManager struct {
	Course *CacheHelper
	Fast   *CacheHelper
}

// NewCacheManager builds one helper per keyspace. With a nil client
// every helper degrades to a pass-through.
func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{
		Course: NewCacheHelper(client, CourseCacheConfig.Prefix),
		Fast:   NewCacheHelper(client, FastCacheConfig.Prefix),
	}
}

// HealthCheck pings Redis, ErrCacheNotAvailable when none is wired.
func (cm *CacheManager) HealthCheck(ctx context.Context) error {
	if cm.Fast.client == nil {
		return ErrCacheNotAvailable
	}

	if _, err := cm.Fast.client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("cache health check failed: %w", err)
	}
	return nil
}

// ClearAll flushes the whole cache database. Diagnostics use only.
func (cm *CacheManager) ClearAll(ctx context.Context) error {
	if cm.Fast.client == nil {
		return nil
	}

	return cm.Fast.client.FlushAll(ctx).Err()
}
