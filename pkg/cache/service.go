package cache

import (
	"context"
	"time"
)

// CacheService defines the behavior for caching mechanisms
type CacheService interface {
	// Get retrieves a value from the cache
	// Returns value, true if found
	Get(key string) (interface{}, bool)

	// Set adds a value to the cache with a duration
	Set(key string, value interface{}, duration time.Duration)

	// Delete removes a value from the cache
	Delete(key string)

	// Flush removes all items
	Flush()
}

// Remember returns the cached value for key, or calls load and caches its
// result for ttl. Load errors are returned and nothing is cached.
// A cached value of the wrong type is treated as a miss.
func Remember[T any](ctx context.Context, c CacheService, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	if val, found := c.Get(key); found {
		if typed, ok := val.(T); ok {
			return typed, nil
		}
	}

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, v, ttl)
	return v, nil
}
