package domain

// Relation describes one linkable relationship of a product.
type Relation struct {
	// Name is the adjacency list name on the owning record.
	Name string

	// RawField is the upstream field holding unresolved references.
	RawField string

	// Reverse is the adjacency list name written on the target.
	Reverse string

	// EmptyField is set to an empty list when the owner has no references.
	// Empty means no placeholder is written.
	EmptyField string
}

// Relations linked by the pipeline.
var (
	RelationCategories = Relation{
		Name:     "categories",
		RawField: "categories",
		Reverse:  "products",
	}
	RelationTags = Relation{
		Name:     "tags",
		RawField: "tags",
		Reverse:  "products",
	}
	RelationRelated = Relation{
		Name:       "related_products",
		RawField:   "related_ids",
		Reverse:    "related_by",
		EmptyField: "related_products",
	}
	RelationGrouped = Relation{
		Name:       "grouped_products_nodes",
		RawField:   "grouped_products",
		Reverse:    "grouped_in",
		EmptyField: "grouped_products_nodes",
	}
)

// RelationState is either Unresolved or Resolved.
type RelationState interface {
	relationState()
}

// Unresolved holds the upstream ids as delivered by the catalog.
type Unresolved struct {
	UpstreamIDs []int64
}

// Resolved holds the node ids the relation points at.
type Resolved struct {
	NodeIDs []string
}

func (Unresolved) relationState() {}
func (Resolved) relationState()   {}
