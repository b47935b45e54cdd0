// Package cache implements a concurrent-safe TTL cache with single-flight
// miss collapsing, used to front upstream API reads.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a generic key-value store with per-call TTL and lazy expiry.
// Expired entries are treated as misses on access and overwritten by the
// next fetch; there is no background sweeper. Concurrent misses for the
// same key are collapsed into a single fetch.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	group   singleflight.Group
	now     func() time.Time
	hits    atomic.Int64
	misses  atomic.Int64
}

// Stats contains cache performance counters.
type Stats struct {
	Entries int     `json:"entries"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// New creates an empty Cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// WithClock sets the time source, for testing.
func (c *Cache[V]) WithClock(now func() time.Time) *Cache[V] {
	c.now = now
	return c
}

// GetOrFetch returns the cached value for key if it is younger than ttl;
// otherwise it invokes fetch, stores the result, and returns it. Fetch
// errors are returned without being cached, so the next call retries.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (V, error)) (V, error) {
	if v, ok := c.lookup(key, ttl); ok {
		c.hits.Add(1)
		return v, nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A concurrent caller may have completed the fetch while this
		// one was queued behind the flight.
		if v, ok := c.lookup(key, ttl); ok {
			return v, nil
		}
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = entry[V]{value: v, storedAt: c.now()}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

func (c *Cache[V]) lookup(key string, ttl time.Duration) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().Sub(e.storedAt) >= ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Invalidate removes the entry for key, if present.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[V]) Stats() Stats {
	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()

	s := Stats{
		Entries: n,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}
