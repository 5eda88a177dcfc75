package services

import (
	"context"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driven"
	"github.com/custodia-labs/wcgraph/internal/logger"
)

// PageFetcher accumulates every page of a catalog collection.
type PageFetcher struct {
	transport driven.CatalogTransport
	log       *logger.Logger
}

// NewPageFetcher creates a page fetcher over a catalog transport.
func NewPageFetcher(transport driven.CatalogTransport, log *logger.Logger) *PageFetcher {
	return &PageFetcher{transport: transport, log: log}
}

// Fetch requests pages in order until the reported page total is reached.
// Failures never propagate: a failed page is logged as a warning and ends
// the loop, and the records gathered so far are returned.
func (f *PageFetcher) Fetch(ctx context.Context, path string, opts domain.FetchOptions) []domain.RawRecord {
	records := make([]domain.RawRecord, 0)
	totalPages := 0

	for page := 1; ; page++ {
		select {
		case <-ctx.Done():
			f.log.Debug("Fetch of %s cancelled at page %d", path, page)
			return records
		default:
		}

		result, err := f.transport.ListPage(ctx, path, domain.PageQuery{
			Page:     page,
			PageSize: opts.PageSize,
			Filter:   opts.Filter,
		})
		if err != nil {
			f.log.Warn("fetching %s page %d failed: %v", path, page, err)
			return records
		}
		if result == nil || !result.StatusOK {
			status := "empty response"
			if result != nil {
				status = result.Status
			}
			f.log.Warn("fetching %s page %d returned status: %s", path, page, status)
			return records
		}

		records = append(records, result.Records...)
		totalPages = result.TotalPages
		f.log.Debug("Fetched %s page %d/%d (%d records)", path, page, totalPages, len(result.Records))

		if page >= totalPages {
			return records
		}
	}
}
