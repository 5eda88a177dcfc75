package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driven"
)

// fileRegistry implements driven.FileRegistry.
type fileRegistry struct {
	store *Store
}

var _ driven.FileRegistry = (*fileRegistry)(nil)

// Register stores a new file record.
func (r *fileRegistry) Register(ctx context.Context, file domain.FileRef) error {
	if file.ID == "" {
		return domain.ErrInvalidInput
	}
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO files (id, url, path, owner_id, size, created_at, touched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			url = excluded.url,
			path = excluded.path,
			owner_id = excluded.owner_id,
			size = excluded.size,
			touched_at = excluded.touched_at
	`, file.ID, file.URL, file.Path, file.OwnerID, file.Size,
		file.CreatedAt.UnixNano(), file.TouchedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("registering file: %w", err)
	}
	return nil
}

// Touch updates the last-used time of a file.
func (r *fileRegistry) Touch(ctx context.Context, fileID string, at time.Time) error {
	result, err := r.store.db.ExecContext(ctx, `
		UPDATE files SET touched_at = ? WHERE id = ?
	`, at.UnixNano(), fileID)
	if err != nil {
		return fmt.Errorf("touching file: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("touching file: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get retrieves a file record by ID.
func (r *fileRegistry) Get(ctx context.Context, fileID string) (*domain.FileRef, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, url, path, owner_id, size, created_at, touched_at
		FROM files WHERE id = ?
	`, fileID)

	var file domain.FileRef
	var createdAt, touchedAt int64
	err := row.Scan(&file.ID, &file.URL, &file.Path, &file.OwnerID, &file.Size, &createdAt, &touchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning file: %w", err)
	}
	file.CreatedAt = time.Unix(0, createdAt)
	file.TouchedAt = time.Unix(0, touchedAt)
	return &file, nil
}
