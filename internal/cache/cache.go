package cache

import (
	"sync"
	"time"
)

// entry pairs a stored value with its capture time.
type entry[V any] struct {
	value      V
	capturedAt time.Time
}

// Cache is a concurrency-safe in-memory TTL cache. Entries past the TTL are
// invisible to GetFresh but stay available to GetStale until swept, so a
// failed refresh can still be answered with the last known value.
type Cache[V any] struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]entry[V]

	// now is swappable in tests.
	now func() time.Time
}

// New creates an empty cache with the given freshness TTL.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:  ttl,
		data: make(map[string]entry[V]),
		now:  time.Now,
	}
}

// GetFresh returns the value for key when an entry exists and its age is
// within the TTL.
func (c *Cache[V]) GetFresh(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok || c.now().Sub(e.capturedAt) > c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// GetStale returns the value for key regardless of age.
func (c *Cache[V]) GetStale(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry whole.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = entry[V]{value: value, capturedAt: c.now()}
}

// Len reports the number of physically present entries, stale ones included.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Sweep drops entries older than maxAge and reports how many were removed.
// maxAge must stay well above the TTL or recently expired entries stop being
// available as stale fallbacks.
func (c *Cache[V]) Sweep(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-maxAge)
	removed := 0
	for k, e := range c.data {
		if e.capturedAt.Before(cutoff) {
			delete(c.data, k)
			removed++
		}
	}
	return removed
}
