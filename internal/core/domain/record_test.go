package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	t.Run("lifts id and parent", func(t *testing.T) {
		raw := RawRecord{
			"id":     json.Number("15"),
			"parent": json.Number("3"),
			"name":   "Shirts",
		}

		rec := NewRecord(KindForPath(PathProductCategories), "node-15", raw)

		assert.Equal(t, int64(15), rec.UpstreamID)
		require.NotNil(t, rec.UpstreamParentID)
		assert.Equal(t, int64(3), *rec.UpstreamParentID)
		assert.NotContains(t, rec.Fields, "id")
		assert.NotContains(t, rec.Fields, "parent")
		assert.Equal(t, "Shirts", rec.Name())
		assert.Equal(t, "node-15", rec.NodeID)
	})

	t.Run("uses parent_id for products", func(t *testing.T) {
		rec := NewRecord(KindForPath(PathProducts), "p", RawRecord{"id": 1, "parent_id": 0})

		require.NotNil(t, rec.UpstreamParentID)
		assert.Equal(t, int64(0), *rec.UpstreamParentID)
	})

	t.Run("no parent", func(t *testing.T) {
		rec := NewRecord(KindForPath("coupons"), "c", RawRecord{"id": 1})
		assert.Nil(t, rec.UpstreamParentID)
	})

	t.Run("does not alias the raw map", func(t *testing.T) {
		raw := RawRecord{"id": 1, "name": "a"}
		rec := NewRecord(KindForPath(PathProducts), "p", raw)
		rec.Fields["name"] = "b"
		assert.Equal(t, "a", raw["name"])
	})
}

func TestRecord_Modified(t *testing.T) {
	rec := &Record{Fields: map[string]any{"date_modified": "2024-01-01T00:00:00"}}
	assert.Equal(t, "2024-01-01T00:00:00", rec.Modified())

	rec.Fields["date_modified_gmt"] = "2024-01-01T10:00:00"
	assert.Equal(t, "2024-01-01T10:00:00", rec.Modified())

	rec.Fields["modified"] = "m"
	assert.Equal(t, "m", rec.Modified())

	assert.Equal(t, "", (&Record{Fields: map[string]any{}}).Modified())
}

func TestRecord_AddLink(t *testing.T) {
	rec := &Record{}
	rec.AddLink("products", "a")
	rec.AddLink("products", "b")
	rec.AddLink("products", "a")

	assert.Equal(t, []string{"a", "b"}, rec.Links["products"])
}

func TestRecord_Relation(t *testing.T) {
	t.Run("embedded objects are unresolved", func(t *testing.T) {
		rec := &Record{Fields: map[string]any{
			"categories": []any{
				map[string]any{"id": json.Number("23")},
				map[string]any{"id": json.Number("24")},
			},
		}}

		state := rec.Relation(RelationCategories)

		require.IsType(t, Unresolved{}, state)
		assert.Equal(t, []int64{23, 24}, state.(Unresolved).UpstreamIDs)
	})

	t.Run("scalar ids are unresolved", func(t *testing.T) {
		rec := &Record{Fields: map[string]any{"related_ids": []any{float64(1), float64(2)}}}

		state := rec.Relation(RelationRelated)

		require.IsType(t, Unresolved{}, state)
		assert.Equal(t, []int64{1, 2}, state.(Unresolved).UpstreamIDs)
	})

	t.Run("resolved links win", func(t *testing.T) {
		rec := &Record{
			Fields: map[string]any{},
			Links:  map[string][]string{"tags": {"t1"}},
		}

		state := rec.Relation(RelationTags)

		require.IsType(t, Resolved{}, state)
		assert.Equal(t, []string{"t1"}, state.(Resolved).NodeIDs)
	})

	t.Run("absent relation", func(t *testing.T) {
		rec := &Record{Fields: map[string]any{}}
		assert.Nil(t, rec.Relation(RelationGrouped))
	})
}

func TestRecord_Resolve(t *testing.T) {
	t.Run("removes raw field when ids are resolved", func(t *testing.T) {
		rec := &Record{Fields: map[string]any{"tags": []any{map[string]any{"id": 1}}}}

		rec.Resolve(RelationTags, []string{"tag-node"})

		assert.NotContains(t, rec.Fields, "tags")
		assert.Equal(t, []string{"tag-node"}, rec.Links["tags"])
	})

	t.Run("keeps raw field when nothing resolved", func(t *testing.T) {
		rec := &Record{Fields: map[string]any{"tags": []any{map[string]any{"id": 1}}}}

		rec.Resolve(RelationTags, nil)

		assert.Contains(t, rec.Fields, "tags")
		assert.Empty(t, rec.Links["tags"])
	})
}
