package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driven"
)

// nodeStore implements driven.NodeStore.
type nodeStore struct {
	store *Store
}

var _ driven.NodeStore = (*nodeStore)(nil)

// CreateNode stores or replaces a node.
func (s *nodeStore) CreateNode(ctx context.Context, node *domain.Node) error {
	if node == nil || node.ID == "" {
		return domain.ErrInvalidInput
	}

	body, err := json.Marshal(node)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnserializable, err)
	}

	var parentID sql.NullInt64
	if node.UpstreamParentID != nil {
		parentID = sql.NullInt64{Int64: *node.UpstreamParentID, Valid: true}
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO nodes (id, type, upstream_id, upstream_parent_id, content_digest, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			upstream_id = excluded.upstream_id,
			upstream_parent_id = excluded.upstream_parent_id,
			content_digest = excluded.content_digest,
			body = excluded.body,
			updated_at = excluded.updated_at
	`, node.ID, node.Internal.Type, node.UpstreamID, parentID, node.Internal.ContentDigest,
		s.store.codec.compress(body), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("saving node: %w", err)
	}
	return nil
}

// GetNode retrieves a node by ID.
func (s *nodeStore) GetNode(ctx context.Context, id string) (*domain.Node, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT body FROM nodes WHERE id = ?", id)

	var body []byte
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning node: %w", err)
	}
	return s.decode(body)
}

// ListByType returns all nodes with the given type tag, ordered by
// upstream id.
func (s *nodeStore) ListByType(ctx context.Context, typeTag string) ([]domain.Node, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT body FROM nodes WHERE type = ? ORDER BY upstream_id, id
	`, typeTag)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	nodes := make([]domain.Node, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		node, err := s.decode(body)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, *node)
	}
	return nodes, rows.Err()
}

func (s *nodeStore) decode(body []byte) (*domain.Node, error) {
	raw, err := s.store.codec.decompress(body)
	if err != nil {
		return nil, err
	}
	var node domain.Node
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("decoding node: %w", err)
	}
	return &node, nil
}
