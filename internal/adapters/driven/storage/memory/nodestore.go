package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driven"
)

// Ensure NodeStore implements the interface.
var _ driven.NodeStore = (*NodeStore)(nil)

// NodeStore is an in-memory implementation of driven.NodeStore.
type NodeStore struct {
	mu    sync.RWMutex
	nodes map[string]domain.Node
}

// NewNodeStore creates a new in-memory node store.
func NewNodeStore() *NodeStore {
	return &NodeStore{
		nodes: make(map[string]domain.Node),
	}
}

// CreateNode stores or replaces a node.
func (s *NodeStore) CreateNode(_ context.Context, node *domain.Node) error {
	if node == nil || node.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[node.ID] = *node
	return nil
}

// GetNode retrieves a node by ID.
func (s *NodeStore) GetNode(_ context.Context, id string) (*domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	node, ok := s.nodes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &node, nil
}

// ListByType returns all nodes with the given type tag, ordered by
// upstream id.
func (s *NodeStore) ListByType(_ context.Context, typeTag string) ([]domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Node, 0)
	for _, node := range s.nodes {
		if node.Internal.Type == typeTag {
			result = append(result, node)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpstreamID < result[j].UpstreamID
	})
	return result, nil
}

// Count returns the number of stored nodes.
func (s *NodeStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}
