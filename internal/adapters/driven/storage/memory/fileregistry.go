package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driven"
)

// Ensure FileRegistry implements the interface.
var _ driven.FileRegistry = (*FileRegistry)(nil)

// FileRegistry is an in-memory implementation of driven.FileRegistry.
type FileRegistry struct {
	mu    sync.RWMutex
	files map[string]domain.FileRef
}

// NewFileRegistry creates a new in-memory file registry.
func NewFileRegistry() *FileRegistry {
	return &FileRegistry{
		files: make(map[string]domain.FileRef),
	}
}

// Register stores a new file record.
func (r *FileRegistry) Register(_ context.Context, file domain.FileRef) error {
	if file.ID == "" {
		return domain.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[file.ID] = file
	return nil
}

// Touch updates the last-used time of a file.
func (r *FileRegistry) Touch(_ context.Context, fileID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, ok := r.files[fileID]
	if !ok {
		return domain.ErrNotFound
	}
	file.TouchedAt = at
	r.files[fileID] = file
	return nil
}

// Get retrieves a file record by ID.
func (r *FileRegistry) Get(_ context.Context, fileID string) (*domain.FileRef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	file, ok := r.files[fileID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &file, nil
}
