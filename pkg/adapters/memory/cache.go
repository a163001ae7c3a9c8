package memory

import (
	"context"
	"sync"

	"github.com/aretw0/tetrator/pkg/domain"
)

// DefaultSize is the number of entries kept when no size is given.
const DefaultSize = 256

// Cache implements ports.ResultCache in memory.
// Safe for concurrent use. When full, the oldest entry is evicted.
type Cache struct {
	data  map[string]domain.CacheEntry
	order []string
	size  int
	mu    sync.RWMutex
}

// NewCache creates a cache holding at most size entries.
// A size of zero or less uses DefaultSize.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	return &Cache{
		data: make(map[string]domain.CacheEntry, size),
		size: size,
	}
}

// Get retrieves the entry for key.
func (c *Cache) Get(ctx context.Context, key string) (domain.CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.data[key]
	if !ok {
		return domain.CacheEntry{}, domain.ErrCacheMiss
	}
	return entry, nil
}

// Put stores the entry for key.
func (c *Cache) Put(ctx context.Context, key string, entry domain.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; !exists {
		for len(c.order) >= c.size {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.data, oldest)
		}
		c.order = append(c.order, key)
	}
	c.data[key] = entry
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
