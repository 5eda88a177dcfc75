package driving

import (
	"context"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
)

// NodeService browses emitted nodes.
type NodeService interface {
	// Get retrieves a node by ID.
	Get(ctx context.Context, id string) (*domain.Node, error)

	// List returns all nodes of a type tag.
	List(ctx context.Context, typeTag string) ([]domain.Node, error)

	// Parent returns the node whose upstream id equals the node's
	// upstream parent id within the same type, or domain.ErrNotFound.
	Parent(ctx context.Context, id string) (*domain.Node, error)

	// Children returns the nodes of the same type whose upstream parent id
	// equals the node's upstream id.
	Children(ctx context.Context, id string) ([]domain.Node, error)
}
