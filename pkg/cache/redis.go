package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkale/spyglass/pkg/config"
)

// keyPrefix namespaces every cache entry so Clear only touches our keys
const keyPrefix = "spyglass:cache:"

// RedisStore is a Store backed by Redis, for deployments where multiple
// instances should share one cache.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisStore{rdb: rdb}, nil
}

// Get returns the stored bytes if present; Redis expires keys itself
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return data, true, nil
}

// Set stores bytes under key with a TTL
func (r *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return r.rdb.Set(ctx, keyPrefix+key, data, ttl).Err()
}

// Clear removes every key under our prefix
func (r *RedisStore) Clear(ctx context.Context) error {
	iter := r.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del failed: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
