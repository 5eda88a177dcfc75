package services

import (
	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/logger"
)

// Linker turns upstream id references into bidirectional adjacency lists.
//
// Every pass only rewrites relations still in their unresolved form, so
// running a pass again over linked records changes nothing. References to
// ids missing from the record set are dropped without a warning; partial
// catalogs are expected.
type Linker struct {
	log *logger.Logger
}

// NewLinker creates a relationship linker.
func NewLinker(log *logger.Logger) *Linker {
	return &Linker{log: log}
}

// LinkCategories links products to product categories.
func (l *Linker) LinkCategories(records []*domain.Record) []*domain.Record {
	return l.linkTerms(records, domain.KindProductCategory, domain.RelationCategories)
}

// LinkTags links products to product tags.
func (l *Linker) LinkTags(records []*domain.Record) []*domain.Record {
	return l.linkTerms(records, domain.KindProductTag, domain.RelationTags)
}

// LinkRelated links products to their related products.
func (l *Linker) LinkRelated(records []*domain.Record) []*domain.Record {
	return l.linkProducts(records, domain.RelationRelated)
}

// LinkGrouped links grouped products to the products they contain.
func (l *Linker) LinkGrouped(records []*domain.Record) []*domain.Record {
	return l.linkProducts(records, domain.RelationGrouped)
}

// linkTerms links products to taxonomy terms of one kind. Nothing happens
// when the record set holds no terms of that kind.
func (l *Linker) linkTerms(records []*domain.Record, class domain.KindClass, rel domain.Relation) []*domain.Record {
	terms := indexByUpstreamID(records, class)
	if len(terms) == 0 {
		return records
	}

	linked := 0
	for _, rec := range records {
		if !rec.Kind.IsProduct() {
			continue
		}
		if l.link(rec, terms, rel) {
			linked++
		}
	}

	l.log.Debug("Linked %d products via %s", linked, rel.Name)
	return records
}

// linkProducts links products to other products. Products without any
// reference get an explicit empty placeholder list instead of an
// adjacency list.
func (l *Linker) linkProducts(records []*domain.Record, rel domain.Relation) []*domain.Record {
	products := indexByUpstreamID(records, domain.KindProduct)

	linked := 0
	for _, rec := range records {
		if !rec.Kind.IsProduct() {
			continue
		}

		state := rec.Relation(rel)
		if _, resolved := state.(domain.Resolved); resolved {
			continue
		}
		unresolved, _ := state.(domain.Unresolved)
		if len(unresolved.UpstreamIDs) == 0 {
			if _, present := rec.Fields[rel.EmptyField]; !present {
				rec.Fields[rel.EmptyField] = []any{}
			}
			continue
		}

		if l.link(rec, products, rel) {
			linked++
		}
	}

	l.log.Debug("Linked %d products via %s", linked, rel.Name)
	return records
}

// link resolves rel on owner against targets and writes the reciprocal
// edge on every matched target. It reports whether anything resolved.
func (l *Linker) link(owner *domain.Record, targets map[int64]*domain.Record, rel domain.Relation) bool {
	unresolved, ok := owner.Relation(rel).(domain.Unresolved)
	if !ok {
		return false
	}

	nodeIDs := make([]string, 0, len(unresolved.UpstreamIDs))
	for _, id := range unresolved.UpstreamIDs {
		target, found := targets[id]
		if !found {
			continue
		}
		nodeIDs = append(nodeIDs, target.NodeID)
		target.AddLink(rel.Reverse, owner.NodeID)
	}

	owner.Resolve(rel, nodeIDs)
	return len(nodeIDs) > 0
}

// indexByUpstreamID builds the upstream id lookup table for one kind.
// The first record wins when upstream ids repeat.
func indexByUpstreamID(records []*domain.Record, class domain.KindClass) map[int64]*domain.Record {
	index := make(map[int64]*domain.Record)
	for _, rec := range records {
		if rec.Kind.Class != class {
			continue
		}
		if _, exists := index[rec.UpstreamID]; !exists {
			index[rec.UpstreamID] = rec
		}
	}
	return index
}
