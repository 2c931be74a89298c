package products

import (
	"context"
	"slices"
	"sync"
	"time"
)

const CacheTTL = time.Minute

// Lister is the read side the storefront needs.
type Lister interface {
	List(ctx context.Context) ([]Product, error)
}

// Cache keeps the full catalog in memory for a short TTL. The listing page
// filters in process, so every request would otherwise load every row.
type Cache struct {
	src Lister
	ttl time.Duration
	now func() time.Time

	mu        sync.RWMutex
	items     []Product
	fetchedAt time.Time
}

func NewCache(src Lister, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = CacheTTL
	}
	return &Cache{src: src, ttl: ttl, now: time.Now}
}

func (c *Cache) List(ctx context.Context) ([]Product, error) {
	c.mu.RLock()
	if c.items != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		items := slices.Clone(c.items)
		c.mu.RUnlock()
		return items, nil
	}
	c.mu.RUnlock()

	items, err := c.src.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Product{}
	}

	c.mu.Lock()
	c.items = items
	c.fetchedAt = c.now()
	c.mu.Unlock()
	return slices.Clone(items), nil
}

// Invalidate drops the cached catalog (call after writes).
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}
