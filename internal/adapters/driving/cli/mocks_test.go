package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driving"
)

// mockPipeline implements driving.Pipeline for testing.
type mockPipeline struct {
	result *driving.RunResult
	err    error
	runs   int
}

func (m *mockPipeline) Run(_ context.Context) (*driving.RunResult, error) {
	m.runs++
	return m.result, m.err
}

func (m *mockPipeline) Status() driving.PipelineStatus {
	return driving.PipelineStatus{Stage: domain.StageDone}
}

// mockValidator implements Validator for testing.
type mockValidator struct {
	err   error
	calls int
}

func (m *mockValidator) Validate(_ context.Context) error {
	m.calls++
	return m.err
}

// mockNodeService implements driving.NodeService for testing.
type mockNodeService struct {
	nodes map[string]domain.Node
}

func newMockNodeService(nodes ...domain.Node) *mockNodeService {
	m := &mockNodeService{nodes: make(map[string]domain.Node)}
	for _, n := range nodes {
		m.nodes[n.ID] = n
	}
	return m
}

func (m *mockNodeService) Get(_ context.Context, id string) (*domain.Node, error) {
	n, ok := m.nodes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &n, nil
}

func (m *mockNodeService) List(_ context.Context, typeTag string) ([]domain.Node, error) {
	var out []domain.Node
	for _, n := range m.nodes {
		if n.Internal.Type == typeTag {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNodeService) Parent(_ context.Context, id string) (*domain.Node, error) {
	n, ok := m.nodes[id]
	if !ok || n.UpstreamParentID == nil {
		return nil, domain.ErrNotFound
	}
	for _, candidate := range m.nodes {
		if candidate.Internal.Type == n.Internal.Type && candidate.UpstreamID == *n.UpstreamParentID {
			return &candidate, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockNodeService) Children(_ context.Context, id string) ([]domain.Node, error) {
	n, ok := m.nodes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	var out []domain.Node
	for _, candidate := range m.nodes {
		if candidate.UpstreamParentID != nil && *candidate.UpstreamParentID == n.UpstreamID &&
			candidate.Internal.Type == n.Internal.Type {
			out = append(out, candidate)
		}
	}
	return out, nil
}

// useServices installs s for one test.
func useServices(t *testing.T, s *Services) {
	t.Helper()
	old := services
	services = s
	t.Cleanup(func() { services = old })
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}
