package oracle

import (
	"sync"

	"github.com/lixenwraith/laser-lock/puzzle"
)

// Cache memoizes solvability verdicts keyed by canonical puzzle
// signature. Owned by the caller; generators clear it at the start of
// every run so verdicts never leak across puzzles. Safe for concurrent
// use, which the engine's parallel fitness evaluation relies on.
type Cache struct {
	mu      sync.Mutex
	entries map[string]bool
	hits    int
	misses  int
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]bool)}
}

// Clear drops all entries and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]bool)
	c.hits = 0
	c.misses = 0
}

// Stats returns the hit/miss counters accumulated since the last Clear.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// SolvableCached answers IsSolvable through the cache.
func (o *Oracle) SolvableCached(p *puzzle.Puzzle, c *Cache) bool {
	if c == nil {
		return o.IsSolvable(p)
	}

	sig := p.Signature()

	c.mu.Lock()
	if v, ok := c.entries[sig]; ok {
		c.hits++
		c.mu.Unlock()
		return v
	}
	c.misses++
	c.mu.Unlock()

	v := o.IsSolvable(p)

	c.mu.Lock()
	c.entries[sig] = v
	c.mu.Unlock()
	return v
}
