package cache

import (
	"eshop-client/pkg/cache"
	"eshop-client/pkg/logger"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache holds catalog lookups for the lifetime of the process.
type MemoryCache struct {
	store  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

var _ cache.CacheService = (*MemoryCache)(nil)

// NewMemoryCache creates a cache whose entries live for defaultExpiration
// unless Set says otherwise. Expired entries are swept every cleanupInterval.
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) *MemoryCache {
	store := gocache.New(defaultExpiration, cleanupInterval)
	store.OnEvicted(func(key string, _ interface{}) {
		logger.Debug().Str("key", key).Msg("Cache entry evicted")
	})
	return &MemoryCache{store: store}
}

func (c *MemoryCache) Get(key string) (interface{}, bool) {
	v, ok := c.store.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores value; a zero duration means the cache default, not "forever".
func (c *MemoryCache) Set(key string, value interface{}, duration time.Duration) {
	if duration == 0 {
		duration = gocache.DefaultExpiration
	}
	c.store.Set(key, value, duration)
}

func (c *MemoryCache) Delete(key string) {
	c.store.Delete(key)
}

func (c *MemoryCache) Flush() {
	c.store.Flush()
	c.hits.Store(0)
	c.misses.Store(0)
}

// Stats reports lookups since creation or the last Flush.
func (c *MemoryCache) Stats() (hits, misses int64, entries int) {
	return c.hits.Load(), c.misses.Load(), c.store.ItemCount()
}
