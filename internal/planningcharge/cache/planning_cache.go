// Package cache memoizes the planning-charge aggregator's output.
// Planning-charge reads are read-only snapshot transactions (spec §5);
// the cache is invalidated wholesale on every BesoinCharge write, since
// any such write can change any cell of any cached grid.
package cache

import (
	"fmt"
	"sync"

	"github.com/pinggolf/btp-planning-core/internal/planningcharge/valueobjects"
)

// PlanningCache holds the last computed grid per (debut, fin, recherche)
// key. It is safe for concurrent use.
type PlanningCache struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewPlanningCache builds an empty cache.
func NewPlanningCache() *PlanningCache {
	return &PlanningCache{entries: make(map[string]any)}
}

func cacheKey(debut, fin valueobjects.Semaine, recherche string) string {
	return fmt.Sprintf("%s|%s|%s", debut, fin, recherche)
}

// Get returns the cached value for the key, if present.
func (c *PlanningCache) Get(debut, fin valueobjects.Semaine, recherche string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[cacheKey(debut, fin, recherche)]
	return v, ok
}

// Set stores the value for the key.
func (c *PlanningCache) Set(debut, fin valueobjects.Semaine, recherche string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(debut, fin, recherche)] = value
}

// Invalidate clears the entire cache. Called after any BesoinCharge write.
func (c *PlanningCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]any)
}
