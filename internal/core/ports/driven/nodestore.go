package driven

import (
	"context"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
)

// NodeSink accepts finalised nodes.
type NodeSink interface {
	// CreateNode stores or replaces a node.
	CreateNode(ctx context.Context, node *domain.Node) error
}

// NodeStore is a NodeSink that can be read back.
type NodeStore interface {
	NodeSink

	// GetNode retrieves a node by ID.
	GetNode(ctx context.Context, id string) (*domain.Node, error)

	// ListByType returns all nodes with the given type tag, ordered by
	// upstream id.
	ListByType(ctx context.Context, typeTag string) ([]domain.Node, error)
}
