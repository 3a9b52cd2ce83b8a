// Package cache provides a small bounded read-through cache used in front of
// a few aggregate queries. Entries carry an explicit TTL; there is no other
// invalidation hook, so staleness is capped by the TTL alone.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the minimal get/set surface the read paths need.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// RedisCache is a Redis-backed Cache.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing Redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Connect opens a Redis client and verifies the connection with a ping.
func Connect(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// Get returns the cached value for key, or (nil, false) on a miss. Redis
// failures are treated as misses so the caller falls through to the source.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Cache get failed for key %s: %v", key, err)
		}
		return nil, false
	}
	return data, true
}

// Set stores value under key with the given TTL. Failures are logged and
// swallowed; the cache is an optimization, never a dependency.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("Cache set failed for key %s: %v", key, err)
	}
}
