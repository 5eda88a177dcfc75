package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
)

// MediaStore downloads media into the managed file store.
type MediaStore interface {
	// Download fetches url and stores it as a file owned by ownerID.
	Download(ctx context.Context, url, ownerID string) (*domain.FileRef, error)

	// Touch marks an already stored file as still in use.
	Touch(ctx context.Context, fileID string) error
}

// MediaCache maps media identities to previously downloaded files.
type MediaCache interface {
	// Get returns the entry for key, or domain.ErrNotFound.
	Get(ctx context.Context, key string) (*domain.MediaCacheEntry, error)

	// Set stores or replaces the entry for key.
	Set(ctx context.Context, key string, entry domain.MediaCacheEntry) error
}

// FileRegistry records files held by the media store.
type FileRegistry interface {
	// Register stores a new file record.
	Register(ctx context.Context, file domain.FileRef) error

	// Touch updates the last-used time of a file.
	// Returns domain.ErrNotFound for unknown files.
	Touch(ctx context.Context, fileID string, at time.Time) error

	// Get retrieves a file record by ID.
	Get(ctx context.Context, fileID string) (*domain.FileRef, error)
}
