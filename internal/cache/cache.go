// Package cache is an in-memory associative store with a fixed TTL and lazy
// expiry. It is unbounded by entry count: payloads are small text records and
// the process lifetime is short, so expiry plus restart keeps it in check.
package cache

import (
	"strings"
	"sync"
	"time"
)

type Item struct {
	Value     any
	Timestamp time.Time
}

type Cache struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]Item
}

// New creates a cache whose entries expire ttl after being set.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]Item),
	}
}

// Key builds a deterministic cache key from an operation name and its
// normalized arguments, so identical calls are idempotent cache hits.
func Key(op string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, op)
	for _, a := range args {
		parts = append(parts, strings.ToLower(strings.TrimSpace(a)))
	}
	return strings.Join(parts, "|")
}

// Get returns the stored value for key. An entry older than the TTL is
// deleted on read and reported as absent; there is no background sweep.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.items[key]
	if !exists {
		return nil, false
	}

	if c.now().Sub(item.Timestamp) > c.ttl {
		delete(c.items, key)
		return nil, false
	}

	return item.Value, true
}

func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = Item{
		Value:     value,
		Timestamp: c.now(),
	}
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
