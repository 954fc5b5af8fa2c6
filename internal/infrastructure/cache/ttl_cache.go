package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a process-local TTL cache keyed by string. Entries expire by wall
// clock; a stored nil is a valid (negative) entry. Each running instance has
// an independent view; there is no cross-instance invalidation.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Invalidate(key string)
}

type MemoryCache struct {
	c *gocache.Cache
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		c: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (m *MemoryCache) Get(key string) (interface{}, bool) {
	return m.c.Get(key)
}

func (m *MemoryCache) Set(key string, value interface{}, ttl time.Duration) {
	m.c.Set(key, value, ttl)
}

func (m *MemoryCache) Invalidate(key string) {
	m.c.Delete(key)
}
