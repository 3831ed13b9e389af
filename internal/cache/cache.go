// Package cache provides a small in-memory cache for rendered responses.
package cache

import (
	"sync"
	"time"
)

// Timed is a cache that invalidates elements on a timer basis. It is safe
// for concurrent use.
type Timed struct {
	mu    sync.Mutex
	ttl   time.Duration
	cache map[string]element
}

type element struct {
	value    []byte
	creation time.Time
}

// NewTimed creates a new Timed cache where elements will be invalidated after
// a time in cache corresponding to ttl. A ttl of zero or less disables
// caching.
func NewTimed(ttl time.Duration) *Timed {
	return &Timed{
		ttl:   ttl,
		cache: make(map[string]element),
	}
}

// Set assigns a value to a key.
func (c *Timed) Set(key string, val []byte) {
	c.set(key, val, time.Now())
}

func (c *Timed) set(key string, val []byte, t time.Time) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = element{
		value:    val,
		creation: t,
	}
}

// Get retrieves a value for a key. The value may not exist or have expired, in
// which case ok will be false.
func (c *Timed) Get(key string) (value []byte, ok bool) {
	return c.get(key, time.Now())
}

func (c *Timed) get(key string, t time.Time) (value []byte, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	// in memory elements might still be invalid
	if t.Sub(el.creation) > c.ttl {
		delete(c.cache, key)
		return nil, false
	}
	return el.value, true
}

// Len returns the number of entries held, expired or not.
func (c *Timed) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// Purge drops all expired entries.
func (c *Timed) Purge() {
	c.purge(time.Now())
}

func (c *Timed) purge(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, el := range c.cache {
		if t.Sub(el.creation) > c.ttl {
			delete(c.cache, k)
		}
	}
}
