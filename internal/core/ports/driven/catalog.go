package driven

import (
	"context"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
)

// CatalogTransport lists pages of a catalog collection.
// Auth, base URL and wire format are the transport's concern.
type CatalogTransport interface {
	// ListPage fetches one page of a collection.
	// A non-success HTTP answer is reported through Page.StatusOK;
	// an error means the request itself failed.
	ListPage(ctx context.Context, path string, query domain.PageQuery) (*domain.Page, error)
}
