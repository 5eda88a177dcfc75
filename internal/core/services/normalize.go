package services

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
)

// Normalize converts a fully processed record into a node.
//
// Product records whose categories were not linked keep the embedded
// category objects; each gets a wordpress_id equal to its own id so
// consumers read category ids the same way in both shapes. The digest is
// computed over the serialised node after that stamping.
func Normalize(digest DigestFunc, rec *domain.Record) (*domain.Node, error) {
	if rec.Kind.IsProduct() {
		stampCategoryIDs(rec)
	}

	node := &domain.Node{
		ID:               rec.NodeID,
		UpstreamID:       rec.UpstreamID,
		UpstreamParentID: rec.UpstreamParentID,
		Parent:           nil,
		Children:         []string{},
		Fields:           rec.Fields,
		Links:            rec.Links,
	}

	content, err := json.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("%w: %s node %d: %w", domain.ErrUnserializable, rec.Kind, rec.UpstreamID, err)
	}

	node.Internal = domain.Internal{
		Type:          rec.Kind.TypeTag(),
		ContentDigest: digest(content),
	}
	return node, nil
}

func stampCategoryIDs(rec *domain.Record) {
	categories, ok := domain.AsList(rec.Fields[domain.RelationCategories.RawField])
	if !ok {
		return
	}
	for _, c := range categories {
		if m, isMap := domain.AsMap(c); isMap {
			m[domain.KeyUpstreamID] = m[domain.FieldID]
		}
	}
}
