// Package cache provides a small in-process TTL cache for upstream
// lookups. It is an optimization only: callers must produce identical
// results whether or not the cache is warm.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value   any
	expires time.Time
}

// TTLCache is a mutex-guarded map with per-entry expiry. It is passed
// by reference into the clients that need it; core classification and
// scoring code never sees it.
type TTLCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func New() *TTLCache {
	return &TTLCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key, or ok=false if it is missing
// or expired. Expired entries are removed on read.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for the given TTL. Non-positive TTLs are
// treated as "do not cache".
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expires: c.now().Add(ttl)}
}

// Purge drops every entry and returns how many were removed.
func (c *TTLCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]entry)
	return n
}

// Len reports the number of entries currently held, including any that
// have expired but not yet been evicted by a read.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
