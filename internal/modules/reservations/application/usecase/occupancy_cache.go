package usecase

import (
	"sync"

	"mesaYaBooking/internal/modules/reservations/domain"
)

// occupancy maps each start slot of a date to the seats already taken.
type occupancy map[domain.ClockTime]int

type occupancyCache struct {
	mu      sync.RWMutex
	entries map[string]occupancy
}

func newOccupancyCache() *occupancyCache {
	return &occupancyCache{entries: make(map[string]occupancy)}
}

func (c *occupancyCache) get(dateKey string) (occupancy, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[dateKey]
	return entry, ok
}

func (c *occupancyCache) set(dateKey string, entry occupancy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[dateKey] = entry
}

func (c *occupancyCache) invalidate(dateKeys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range dateKeys {
		delete(c.entries, key)
	}
}

func (c *occupancyCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
