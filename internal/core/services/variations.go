package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/logger"
)

const (
	// VariationPageSize is the page size used for variation sub-collections.
	VariationPageSize = 100

	// FieldVariations lists the variation ids of a variable product.
	FieldVariations = "variations"

	// FieldProductVariations holds the fetched variation records.
	FieldProductVariations = "product_variations"
)

// VariationExpander attaches variation records to variable products.
type VariationExpander struct {
	fetcher     *PageFetcher
	concurrency int
	log         *logger.Logger
}

// NewVariationExpander creates an expander that fetches through fetcher
// with at most concurrency products in flight.
func NewVariationExpander(fetcher *PageFetcher, concurrency int, log *logger.Logger) *VariationExpander {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &VariationExpander{fetcher: fetcher, concurrency: concurrency, log: log}
}

// VariationsPath returns the variation sub-collection of a product.
func VariationsPath(productID int64) string {
	return fmt.Sprintf("products/%d/variations", productID)
}

// Expand sets product_variations on every product record. Products
// without variation ids get an empty list. Other records are unchanged.
func (e *VariationExpander) Expand(ctx context.Context, records []*domain.Record) []*domain.Record {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, rec := range records {
		if !rec.Kind.IsProduct() {
			continue
		}

		ids, _ := domain.AsList(rec.Fields[FieldVariations])
		if len(ids) == 0 {
			rec.Fields[FieldProductVariations] = []any{}
			continue
		}

		g.Go(func() error {
			variations := e.fetcher.Fetch(gctx, VariationsPath(rec.UpstreamID), domain.FetchOptions{
				PageSize: VariationPageSize,
			})
			list := make([]any, 0, len(variations))
			for _, v := range variations {
				list = append(list, map[string]any(v))
			}
			rec.Fields[FieldProductVariations] = list
			e.log.Debug("Expanded %d variations for product %d", len(list), rec.UpstreamID)
			return nil
		})
	}

	// Goroutines never return errors; failures degrade inside the fetcher.
	_ = g.Wait()
	return records
}
