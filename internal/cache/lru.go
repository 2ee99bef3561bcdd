package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU is a thread-safe, size bounded cache that tracks hit and miss counts. A cache created with
// size 0 stores nothing and misses every lookup.
type LRU[K comparable, V any] struct {
	cache  *lru.Cache[K, V]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats is a snapshot of the cache counters
type Stats struct {
	Size   int     `json:"size"`
	Hits   uint64  `json:"hits"`
	Misses uint64  `json:"misses"`
	Ratio  float64 `json:"hit_ratio"`
}

func NewLRU[K comparable, V any](size int) (*LRU[K, V], error) {
	c := &LRU[K, V]{}
	if size == 0 {
		return c, nil
	}
	inner, err := lru.New[K, V](size)
	if err != nil {
		return nil, err
	}
	c.cache = inner
	return c, nil
}

func (c *LRU[K, V]) Get(key K) (V, bool) {
	if c.cache == nil {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	val, ok := c.cache.Get(key)
	if !ok {
		c.misses.Add(1)
		return val, false
	}
	c.hits.Add(1)
	return val, true
}

// Add stores the value, returning true if an older entry was evicted
func (c *LRU[K, V]) Add(key K, val V) bool {
	if c.cache == nil {
		return false
	}
	return c.cache.Add(key, val)
}

func (c *LRU[K, V]) Len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

func (c *LRU[K, V]) Purge() {
	if c.cache == nil {
		return
	}
	c.cache.Purge()
}

func (c *LRU[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	s := Stats{
		Size:   c.Len(),
		Hits:   hits,
		Misses: misses,
	}
	if total := hits + misses; total > 0 {
		s.Ratio = float64(hits) / float64(total)
	}
	return s
}
