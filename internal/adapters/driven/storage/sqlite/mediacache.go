package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driven"
)

// mediaCache implements driven.MediaCache.
type mediaCache struct {
	store *Store
}

var _ driven.MediaCache = (*mediaCache)(nil)

// Get retrieves the entry for a cache key.
func (c *mediaCache) Get(ctx context.Context, key string) (*domain.MediaCacheEntry, error) {
	row := c.store.db.QueryRowContext(ctx, `
		SELECT file_id, modified FROM media_cache WHERE cache_key = ?
	`, key)

	var entry domain.MediaCacheEntry
	if err := row.Scan(&entry.FileID, &entry.Modified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning media cache entry: %w", err)
	}
	return &entry, nil
}

// Set stores or replaces the entry for a cache key.
func (c *mediaCache) Set(ctx context.Context, key string, entry domain.MediaCacheEntry) error {
	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO media_cache (cache_key, file_id, modified)
		VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			file_id = excluded.file_id,
			modified = excluded.modified
	`, key, entry.FileID, entry.Modified)
	if err != nil {
		return fmt.Errorf("saving media cache entry: %w", err)
	}
	return nil
}
