package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driven"
)

func testConfig(fields ...string) domain.SourceConfig {
	return domain.SourceConfig{
		API:            "shop.test",
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		Fields:         fields,
		PerPage:        2,
	}
}

func catalogTransport() *fakeTransport {
	transport := newFakeTransport()
	transport.serve("products",
		[]domain.RawRecord{
			{
				"id":          1,
				"name":        "Hoodie",
				"modified":    "2024-05-01T10:00:00",
				"categories":  []any{map[string]any{"id": 10}},
				"tags":        []any{map[string]any{"id": 20}},
				"related_ids": []any{2},
				"variations":  []any{101},
				"images":      []any{map[string]any{"id": 500, "src": "https://shop.test/hoodie.jpg"}},
			},
			{"id": 2, "name": "Cap", "categories": []any{map[string]any{"id": 10}}},
		},
		[]domain.RawRecord{
			{"id": 3, "name": "Bundle", "type": "grouped", "grouped_products": []any{1, 2}},
		},
	)
	transport.serve("products/categories", []domain.RawRecord{{"id": 10, "name": "Clothing", "parent": 0}})
	transport.serve("products/tags", []domain.RawRecord{{"id": 20, "name": "warm"}})
	transport.serve(VariationsPath(1), []domain.RawRecord{{"id": 101, "sku": "H-S"}})
	return transport
}

func newTestPipeline(transport *fakeTransport, sink driven.NodeSink, fields ...string) (*Pipeline, *fakeMediaStore) {
	log, _ := testLogger()
	store := newFakeMediaStore()
	return NewPipeline(testConfig(fields...), transport, store, newFakeMediaCache(), sink, log), store
}

func TestPipeline_Run(t *testing.T) {
	sink := &fakeSink{}
	p, store := newTestPipeline(catalogTransport(), sink, "products", "products/categories", "products/tags")

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, result.NodesEmitted)
	assert.Equal(t, map[string]int{
		"wcProducts":           3,
		"wcProductsCategories": 1,
		"wcProductsTags":       1,
	}, result.NodesByType)
	assert.Zero(t, result.Warnings)
	assert.Equal(t, 1, store.downloadCount())

	products := sink.byType("wcProducts")
	require.Len(t, products, 3)
	hoodie, capNode, bundle := products[0], products[1], products[2]
	category := sink.byType("wcProductsCategories")[0]
	tag := sink.byType("wcProductsTags")[0]

	assert.Equal(t, []string{category.ID}, hoodie.Links["categories"])
	assert.Equal(t, []string{tag.ID}, hoodie.Links["tags"])
	assert.Equal(t, []string{capNode.ID}, hoodie.Links["related_products"])
	assert.Equal(t, []string{bundle.ID}, hoodie.Links["grouped_in"])
	assert.Equal(t, []string{hoodie.ID, capNode.ID}, category.Links["products"])
	assert.Equal(t, []string{hoodie.ID, capNode.ID}, bundle.Links["grouped_products_nodes"])
	assert.Equal(t, []string{hoodie.ID}, capNode.Links["related_by"])

	variations := hoodie.Fields[FieldProductVariations].([]any)
	require.Len(t, variations, 1)
	image := hoodie.Fields[FieldImages].([]any)[0].(map[string]any)
	assert.Equal(t, "file-1", image[FieldLocalFile])

	for _, n := range sink.nodes {
		assert.NotEmpty(t, n.Internal.ContentDigest)
		assert.Nil(t, n.Parent)
		assert.Empty(t, n.Children)
	}

	status := p.Status()
	assert.False(t, status.Running)
	assert.Equal(t, domain.StageDone, status.Stage)
}

func TestPipeline_Run_CountsWarnings(t *testing.T) {
	transport := catalogTransport()
	transport.fail("products", 2, errors.New("timeout"))
	sink := &fakeSink{}
	p, _ := newTestPipeline(transport, sink, "products")

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.NodesEmitted)
	assert.Equal(t, 1, result.Warnings)
}

func TestPipeline_Run_SinkFailureIsFatal(t *testing.T) {
	sink := &fakeSink{failOn: 2}
	p, _ := newTestPipeline(catalogTransport(), sink, "products")

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNodeSink)
	assert.ErrorIs(t, err, errSinkFull)
	assert.Len(t, sink.nodes, 1)
	assert.False(t, p.Status().Running)
}

func TestPipeline_Run_Cancelled(t *testing.T) {
	sink := &fakeSink{}
	p, _ := newTestPipeline(catalogTransport(), sink, "products")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sink.nodes)
}

func TestPipeline_Run_CustomDigest(t *testing.T) {
	sink := &fakeSink{}
	p, _ := newTestPipeline(catalogTransport(), sink, "products/tags")
	p.SetDigest(func([]byte) string { return "fixed" })

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, sink.nodes, 1)
	assert.Equal(t, "fixed", sink.nodes[0].Internal.ContentDigest)
}

// blockingSink holds the first CreateNode call until released.
type blockingSink struct {
	entered chan struct{}
	release chan struct{}
}

func (s *blockingSink) CreateNode(ctx context.Context, _ *domain.Node) error {
	select {
	case s.entered <- struct{}{}:
	default:
	}
	select {
	case <-s.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestPipeline_Run_RejectsConcurrentRun(t *testing.T) {
	sink := &blockingSink{entered: make(chan struct{}, 1), release: make(chan struct{})}
	p, _ := newTestPipeline(catalogTransport(), sink, "products/tags")

	done := make(chan error, 1)
	go func() {
		_, err := p.Run(context.Background())
		done <- err
	}()

	select {
	case <-sink.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("pipeline never reached emit")
	}

	status := p.Status()
	assert.True(t, status.Running)
	assert.Equal(t, domain.StageEmit, status.Stage)

	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrPipelineRunning)

	close(sink.release)
	require.NoError(t, <-done)
	assert.False(t, p.Status().Running)
}
