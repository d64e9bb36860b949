package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Store is the backing key-value store for the TTL cache.
// Implementations: MemoryStore (default) and RedisStore.
type Store interface {
	// Get returns the stored bytes and whether the key was found and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores bytes under key, expiring after ttl.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Clear removes every key.
	Clear(ctx context.Context) error
}

// Cache provides typed, time-boxed caching of expensive fetches.
// Values are stale after their TTL and can be cleared manually at any time.
type Cache struct {
	store Store
}

// New creates a cache backed by the given store
func New(store Store) *Cache {
	return &Cache{store: store}
}

// Key builds a cache key from a function identity and its arguments.
// Two calls with the same function and arguments share one entry.
func Key(fn string, args ...interface{}) string {
	if len(args) == 0 {
		return fn
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, fmt.Sprintf("%v", arg))
	}
	return fmt.Sprintf("%s(%s)", fn, strings.Join(parts, ","))
}

// Get retrieves a cached value into dest
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, found, err := c.store.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}

	return true, nil
}

// Set stores a value with TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	return c.store.Set(ctx, key, data, ttl)
}

// GetOrSet retrieves from cache or calls fn to populate it
func (c *Cache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, fn func() (interface{}, error)) error {
	found, err := c.Get(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	// Cache miss - call function
	value, err := fn()
	if err != nil {
		return err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	return json.Unmarshal(data, dest)
}

// InvalidateAll clears every cached value immediately.
// Backs the dashboard's manual "refresh all data" action.
func (c *Cache) InvalidateAll(ctx context.Context) error {
	return c.store.Clear(ctx)
}
