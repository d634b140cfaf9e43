// internal/search/cache.go
package search

import (
	"context"
	"sync"
	"time"

	"tripscout/internal/models"
)

// Cache stores ranked result sets keyed by query fingerprint. Implementations
// must be safe for concurrent use. A lookup error means the backend is
// unreachable, not that the key is absent.
type Cache interface {
	Lookup(ctx context.Context, key string) ([]models.Attraction, bool, error)
	Store(ctx context.Context, key string, results []models.Attraction) error
}

type memoryEntry struct {
	results  []models.Attraction
	storedAt time.Time
}

// MemoryCache is the in-process cache backend: TTL-bounded entries with lazy
// expiry and a hard entry cap evicted oldest-first.
type MemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Lookup returns the cached results for key if present and fresh. Expired
// entries are treated as misses and removed on the spot; there is no
// background sweeper.
func (c *MemoryCache) Lookup(_ context.Context, key string) ([]models.Attraction, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if c.now().Sub(entry.storedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock: another goroutine may have
		// refreshed the entry since the read.
		if cur, ok := c.entries[key]; ok && cur.storedAt.Equal(entry.storedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	return entry.results, true, nil
}

// Store inserts or refreshes an entry, then evicts the oldest entries until
// the cache is back within its cap.
func (c *MemoryCache) Store(_ context.Context, key string, results []models.Attraction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{results: results, storedAt: c.now()}

	for c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		oldestKey := ""
		var oldestAt time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.storedAt.Before(oldestAt) {
				oldestKey, oldestAt = k, e.storedAt
			}
		}
		delete(c.entries, oldestKey)
	}
	return nil
}

// Len reports the current entry count.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
