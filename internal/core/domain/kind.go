package domain

import "strings"

// Collection paths of the built-in resource kinds.
const (
	PathProducts          = "products"
	PathProductCategories = "products/categories"
	PathProductTags       = "products/tags"
)

// KindClass distinguishes the resource kinds the pipeline treats specially.
type KindClass int

const (
	// KindCustom is any collection without special linking rules.
	KindCustom KindClass = iota

	// KindProduct is the products collection.
	KindProduct

	// KindProductCategory is the product categories collection.
	KindProductCategory

	// KindProductTag is the product tags collection.
	KindProductTag
)

// ResourceKind identifies which collection a record came from.
type ResourceKind struct {
	// Class is the kind discriminator.
	Class KindClass

	// Path is the collection path the record was fetched from.
	Path string
}

// KindForPath derives the resource kind for a collection path.
func KindForPath(path string) ResourceKind {
	path = strings.Trim(path, "/")
	switch path {
	case PathProducts:
		return ResourceKind{Class: KindProduct, Path: path}
	case PathProductCategories:
		return ResourceKind{Class: KindProductCategory, Path: path}
	case PathProductTags:
		return ResourceKind{Class: KindProductTag, Path: path}
	default:
		return ResourceKind{Class: KindCustom, Path: path}
	}
}

// IsProduct reports whether the kind is the products collection.
func (k ResourceKind) IsProduct() bool {
	return k.Class == KindProduct
}

// FieldName returns the camelCased collection path.
func (k ResourceKind) FieldName() string {
	return NormaliseFieldName(k.Path)
}

// TypeTag returns the node type tag for the kind, e.g. "wcProductsCategories".
func (k ResourceKind) TypeTag() string {
	return TypeTag(k.Path)
}

// String returns the collection path.
func (k ResourceKind) String() string {
	return k.Path
}

// NormaliseFieldName turns a multi part collection path into camelCase.
// "products/categories" becomes "productsCategories".
func NormaliseFieldName(path string) string {
	var b strings.Builder
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(capitalise(part))
	}
	return b.String()
}

// TypeTag returns the node type tag for a collection path.
func TypeTag(path string) string {
	return "wc" + capitalise(NormaliseFieldName(path))
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
