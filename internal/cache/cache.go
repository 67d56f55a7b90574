// Package cache provides a small TTL cache used as a read-through
// optimization in front of leaderboard computation. Entries are served
// stale for up to the TTL, then recomputed; concurrent writes to the
// same key are last-write-wins.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	data     interface{}
	storedAt time.Time
}

// Cache is an explicitly constructed component so callers (and tests)
// control its lifetime and clock.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func New(ttl time.Duration) *Cache {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock lets tests substitute the clock.
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for key, or false if the key is absent
// or its entry has outlived the TTL.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		return nil, false
	}
	return e.data, true
}

func (c *Cache) Set(key string, data interface{}) {
	c.mu.Lock()
	c.entries[key] = entry{data: data, storedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate drops a key so the next read recomputes.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
