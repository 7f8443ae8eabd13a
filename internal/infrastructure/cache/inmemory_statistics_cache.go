package cache

import (
	"context"
	"sync"
	"time"

	appinv "github.com/pizzastock/backend/internal/application/inventory"
	"github.com/pizzastock/backend/internal/domain/inventory"
)

// InMemoryStatisticsCache is a process-local statistics cache used when
// Redis is disabled and in tests. Entries expire lazily on read.
type InMemoryStatisticsCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	stats     []inventory.MovementStatistic
	expiresAt time.Time
}

// NewInMemoryStatisticsCache creates an empty in-memory cache
func NewInMemoryStatisticsCache() *InMemoryStatisticsCache {
	return &InMemoryStatisticsCache{
		entries: make(map[string]inMemoryEntry),
	}
}

// Get returns the cached statistics for the key, or (nil, nil) on a miss
func (c *InMemoryStatisticsCache) Get(ctx context.Context, key string) ([]inventory.MovementStatistic, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	return entry.stats, nil
}

// Set stores statistics under the key with a TTL
func (c *InMemoryStatisticsCache) Set(ctx context.Context, key string, stats []inventory.MovementStatistic, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = inMemoryEntry{
		stats:     stats,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Invalidate drops every cached entry
func (c *InMemoryStatisticsCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]inMemoryEntry)
	return nil
}

// Ensure InMemoryStatisticsCache implements StatisticsCache
var _ appinv.StatisticsCache = (*InMemoryStatisticsCache)(nil)
