// Package remote implements the cached HTTP client for the remote
// metadata instance.
package remote

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Cache is a TTL cache for remote responses, shared by every node
// instance in the process. It is explicitly constructed and injected,
// never a package singleton. Lookups and stores are mutex-guarded
// because timers and HTTP handlers run on their own goroutines.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]cacheEntry
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]cacheEntry)}
}

// Key derives a cache key from an endpoint plus every request
// parameter that affects the result. Parameters must be included in a
// canonical order by the caller so pool-filtered requests cannot
// contaminate each other.
func Key(endpoint string, params ...string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(endpoint)
	for _, p := range params {
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(p)
	}
	return h.Sum64()
}

// Get returns the cached value when present and not expired.
func (c *Cache) Get(key uint64) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !time.Now().Before(e.expiresAt) {
		// Expired entries are kept until Set or Invalidate so an
		// explicit stale-fallback policy can still reach them.
		return nil, false
	}
	return e.value, true
}

// GetStale returns the cached value even when expired. Callers must
// flag the result as stale; serving it silently is never allowed.
func (c *Cache) GetStale(key uint64) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl.
func (c *Cache) Set(key uint64, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(ttl)}
}

// Invalidate removes a single entry.
func (c *Cache) Invalidate(key uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]cacheEntry)
}
