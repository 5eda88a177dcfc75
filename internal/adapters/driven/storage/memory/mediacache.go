package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driven"
)

// Ensure MediaCache implements the interface.
var _ driven.MediaCache = (*MediaCache)(nil)

// MediaCache is an in-memory implementation of driven.MediaCache.
type MediaCache struct {
	mu      sync.RWMutex
	entries map[string]domain.MediaCacheEntry
}

// NewMediaCache creates a new in-memory media cache.
func NewMediaCache() *MediaCache {
	return &MediaCache{
		entries: make(map[string]domain.MediaCacheEntry),
	}
}

// Get retrieves the entry for a cache key.
func (c *MediaCache) Get(_ context.Context, key string) (*domain.MediaCacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// Set stores or replaces the entry for a cache key.
func (c *MediaCache) Set(_ context.Context, key string, entry domain.MediaCacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
	return nil
}
