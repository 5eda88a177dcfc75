package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driven"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driving"
)

// Ensure HierarchyResolver implements the interface.
var _ driving.NodeService = (*HierarchyResolver)(nil)

// HierarchyResolver answers parent and children queries over emitted
// nodes. Relations hold between nodes of the same type where one node's
// wordpress_parent_id equals the other's wordpress_id.
type HierarchyResolver struct {
	store driven.NodeStore
}

// NewHierarchyResolver creates a resolver over a node store.
func NewHierarchyResolver(store driven.NodeStore) *HierarchyResolver {
	return &HierarchyResolver{store: store}
}

// Get retrieves a node by ID.
func (h *HierarchyResolver) Get(ctx context.Context, id string) (*domain.Node, error) {
	return h.store.GetNode(ctx, id)
}

// List returns all nodes of a type tag.
func (h *HierarchyResolver) List(ctx context.Context, typeTag string) ([]domain.Node, error) {
	return h.store.ListByType(ctx, typeTag)
}

// Parent returns the parent of a node within its type.
func (h *HierarchyResolver) Parent(ctx context.Context, id string) (*domain.Node, error) {
	node, err := h.store.GetNode(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get node: %w", err)
	}
	if node.UpstreamParentID == nil {
		return nil, domain.ErrNotFound
	}

	siblings, err := h.store.ListByType(ctx, node.Internal.Type)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", node.Internal.Type, err)
	}
	for i := range siblings {
		if siblings[i].UpstreamID == *node.UpstreamParentID {
			return &siblings[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Children returns the direct children of a node within its type.
func (h *HierarchyResolver) Children(ctx context.Context, id string) ([]domain.Node, error) {
	node, err := h.store.GetNode(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get node: %w", err)
	}

	siblings, err := h.store.ListByType(ctx, node.Internal.Type)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", node.Internal.Type, err)
	}

	children := make([]domain.Node, 0)
	for _, n := range siblings {
		if n.UpstreamParentID != nil && *n.UpstreamParentID == node.UpstreamID && n.ID != node.ID {
			children = append(children, n)
		}
	}
	return children, nil
}
