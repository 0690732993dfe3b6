package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/shirou/gopsutil/mem"
)

const (
	// DefaultMaxEntries bounds the entry count.
	DefaultMaxEntries = 100
	// DefaultMaxMemoryMB bounds the estimated total size.
	DefaultMaxMemoryMB = 500

	bytesPerMB = 1 << 20
)

// Option configures a Cache.
type Option func(*config)

type config struct {
	maxEntries int
	maxBytes   int64
	now        func() time.Time
}

// WithMaxEntries sets the entry limit. Values < 1 are ignored.
func WithMaxEntries(n int) Option {
	return func(cfg *config) {
		if n >= 1 {
			cfg.maxEntries = n
		}
	}
}

// WithMaxMemoryMB sets the byte budget in mebibytes. Values <= 0 are ignored.
func WithMaxMemoryMB(mb float64) Option {
	return func(cfg *config) {
		if mb > 0 {
			cfg.maxBytes = int64(mb * bytesPerMB)
		}
	}
}

// WithSystemMemoryFraction sets the byte budget to fraction of the
// currently available system memory. It is ignored when fraction is
// outside (0, 1] or the memory query fails.
func WithSystemMemoryFraction(fraction float64) Option {
	return func(cfg *config) {
		if fraction <= 0 || fraction > 1 {
			return
		}
		vm, err := mem.VirtualMemory()
		if err != nil || vm.Available == 0 {
			return
		}
		cfg.maxBytes = int64(float64(vm.Available) * fraction)
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		if now != nil {
			cfg.now = now
		}
	}
}

type entry struct {
	key        string
	value      any
	size       int64
	lastAccess time.Time
	hits       int
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Entries    int
	SizeBytes  int64
	MaxEntries int
	MaxBytes   int64
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Rejected   uint64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is a size- and count-bounded LRU cache. It is safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	cfg   config
	order *list.List // front = most recently used
	items map[string]*list.Element
	size  int64

	hits, misses, evictions, rejected uint64
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	cfg := config{
		maxEntries: DefaultMaxEntries,
		maxBytes:   DefaultMaxMemoryMB * bytesPerMB,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Cache{
		cfg:   cfg,
		order: list.New(),
		items: make(map[string]*list.Element),
	}
}

// Get returns the value stored under key and marks it most recently used.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	e := el.Value.(*entry)
	e.hits++
	e.lastAccess = c.cfg.now()
	c.order.MoveToFront(el)
	c.hits++
	return e.value, true
}

// Set stores value under key and reports whether it was accepted. A value
// whose estimated size exceeds the byte budget is rejected and the cache is
// left unchanged.
func (c *Cache) Set(key string, value any) bool {
	size := EstimateSize(value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if size > c.cfg.maxBytes {
		c.rejected++
		return false
	}

	now := c.cfg.now()
	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry)
		c.size += size - e.size
		e.value = value
		e.size = size
		e.lastAccess = now
		c.order.MoveToFront(el)
	} else {
		e := &entry{key: key, value: value, size: size, lastAccess: now}
		c.items[key] = c.order.PushFront(e)
		c.size += size
	}

	for c.order.Len() > c.cfg.maxEntries || c.size > c.cfg.maxBytes {
		c.removeElement(c.order.Back())
		c.evictions++
	}
	return true
}

// Delete removes key and reports whether it was present.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if ok {
		c.removeElement(el)
	}
	return ok
}

// Clear removes every entry. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	clear(c.items)
	c.size = 0
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// SizeBytes returns the estimated total size of all entries.
func (c *Cache) SizeBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries:    c.order.Len(),
		SizeBytes:  c.size,
		MaxEntries: c.cfg.maxEntries,
		MaxBytes:   c.cfg.maxBytes,
		Hits:       c.hits,
		Misses:     c.misses,
		Evictions:  c.evictions,
		Rejected:   c.rejected,
	}
}

// ExpireOlderThan removes entries not accessed within age and returns how
// many were removed.
func (c *Cache) ExpireOlderThan(age time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.cfg.now().Add(-age)
	return c.removeWhere(func(e *entry) bool { return e.lastAccess.Before(cutoff) })
}

// PruneBelowHits removes entries with fewer than minHits hits and returns
// how many were removed.
func (c *Cache) PruneBelowHits(minHits int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.removeWhere(func(e *entry) bool { return e.hits < minHits })
}

func (c *Cache) removeWhere(match func(*entry) bool) int {
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if match(el.Value.(*entry)) {
			c.removeElement(el)
			removed++
		}
		el = prev
	}
	return removed
}

func (c *Cache) removeElement(el *list.Element) {
	e := c.order.Remove(el).(*entry)
	delete(c.items, e.key)
	c.size -= e.size
}
