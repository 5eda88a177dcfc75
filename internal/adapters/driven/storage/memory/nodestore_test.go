package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
)

func testNode(id string, upstreamID int64, typeTag string) *domain.Node {
	return &domain.Node{
		ID:         id,
		UpstreamID: upstreamID,
		Children:   []string{},
		Fields:     map[string]any{"name": id},
		Internal:   domain.Internal{Type: typeTag, ContentDigest: "d-" + id},
	}
}

func TestNodeStore_CreateAndGet(t *testing.T) {
	store := NewNodeStore()
	ctx := context.Background()

	require.NoError(t, store.CreateNode(ctx, testNode("n1", 1, "wcProducts")))

	got, err := store.GetNode(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UpstreamID)
	assert.Equal(t, "wcProducts", got.Internal.Type)
	assert.Equal(t, 1, store.Count())
}

func TestNodeStore_CreateReplaces(t *testing.T) {
	store := NewNodeStore()
	ctx := context.Background()

	require.NoError(t, store.CreateNode(ctx, testNode("n1", 1, "wcProducts")))
	updated := testNode("n1", 1, "wcProducts")
	updated.Internal.ContentDigest = "changed"
	require.NoError(t, store.CreateNode(ctx, updated))

	got, err := store.GetNode(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Internal.ContentDigest)
	assert.Equal(t, 1, store.Count())
}

func TestNodeStore_CreateInvalid(t *testing.T) {
	store := NewNodeStore()

	assert.ErrorIs(t, store.CreateNode(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.CreateNode(context.Background(), &domain.Node{}), domain.ErrInvalidInput)
}

func TestNodeStore_GetNotFound(t *testing.T) {
	_, err := NewNodeStore().GetNode(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNodeStore_ListByType(t *testing.T) {
	store := NewNodeStore()
	ctx := context.Background()

	require.NoError(t, store.CreateNode(ctx, testNode("c", 30, "wcProducts")))
	require.NoError(t, store.CreateNode(ctx, testNode("a", 10, "wcProducts")))
	require.NoError(t, store.CreateNode(ctx, testNode("t", 5, "wcProductsTags")))
	require.NoError(t, store.CreateNode(ctx, testNode("b", 20, "wcProducts")))

	products, err := store.ListByType(ctx, "wcProducts")
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "a", products[0].ID)
	assert.Equal(t, "b", products[1].ID)
	assert.Equal(t, "c", products[2].ID)

	none, err := store.ListByType(ctx, "wcOrders")
	require.NoError(t, err)
	assert.Empty(t, none)
}
