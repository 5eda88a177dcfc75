package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driven"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driving"
	"github.com/custodia-labs/wcgraph/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.Pipeline = (*Pipeline)(nil)

// Pipeline runs the catalog stages in their fixed order:
// fetch, expand variations, resolve media, link categories, link tags,
// link related, link grouped, normalize, emit.
type Pipeline struct {
	cfg      domain.SourceConfig
	fetcher  *PageFetcher
	expander *VariationExpander
	media    *MediaResolver
	linker   *Linker
	sink     driven.NodeSink
	digest   DigestFunc
	log      *logger.Logger

	mu     sync.RWMutex
	status driving.PipelineStatus
}

// NewPipeline creates a pipeline from its collaborators.
// The configuration must already be validated.
func NewPipeline(
	cfg domain.SourceConfig,
	transport driven.CatalogTransport,
	mediaStore driven.MediaStore,
	mediaCache driven.MediaCache,
	sink driven.NodeSink,
	log *logger.Logger,
) *Pipeline {
	cfg.ApplyDefaults()
	fetcher := NewPageFetcher(transport, log)
	return &Pipeline{
		cfg:      cfg,
		fetcher:  fetcher,
		expander: NewVariationExpander(fetcher, cfg.Concurrency, log),
		media:    NewMediaResolver(mediaStore, mediaCache, cfg.Media.Concurrency, log),
		linker:   NewLinker(log),
		sink:     sink,
		digest:   Blake3Digest,
		log:      log,
	}
}

// SetDigest replaces the content digest function.
func (p *Pipeline) SetDigest(digest DigestFunc) {
	p.digest = digest
}

type recordStage struct {
	stage domain.Stage
	run   func(ctx context.Context, records []*domain.Record) []*domain.Record
}

// Run executes every stage once. Upstream, link and media failures are
// absorbed by the stages; only invalid records, sink failures and
// cancellation abort the run.
func (p *Pipeline) Run(ctx context.Context) (*driving.RunResult, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	defer p.finish()

	start := time.Now()
	warningsBefore := p.log.Warnings()

	stages := []recordStage{
		{domain.StageFetch, func(ctx context.Context, _ []*domain.Record) []*domain.Record {
			return p.fetchAll(ctx)
		}},
		{domain.StageExpandVariations, p.expander.Expand},
		{domain.StageResolveMedia, p.media.Resolve},
		{domain.StageLinkCategories, withoutContext(p.linker.LinkCategories)},
		{domain.StageLinkTags, withoutContext(p.linker.LinkTags)},
		{domain.StageLinkRelated, withoutContext(p.linker.LinkRelated)},
		{domain.StageLinkGrouped, withoutContext(p.linker.LinkGrouped)},
	}

	var records []*domain.Record
	for _, s := range stages {
		if err := p.enter(ctx, s.stage, len(records)); err != nil {
			return nil, err
		}
		records = s.run(ctx, records)
	}

	if err := p.enter(ctx, domain.StageNormalize, len(records)); err != nil {
		return nil, err
	}
	nodes := make([]*domain.Node, 0, len(records))
	for _, rec := range records {
		node, err := Normalize(p.digest, rec)
		if err != nil {
			return nil, fmt.Errorf("normalize: %w", err)
		}
		nodes = append(nodes, node)
	}

	if err := p.enter(ctx, domain.StageEmit, len(records)); err != nil {
		return nil, err
	}
	result := &driving.RunResult{NodesByType: make(map[string]int)}
	for _, node := range nodes {
		if err := p.sink.CreateNode(ctx, node); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrNodeSink, node.ID, err)
		}
		result.NodesByType[node.Internal.Type]++
		result.NodesEmitted++
	}

	p.setStage(domain.StageDone)
	result.Warnings = p.log.Warnings() - warningsBefore
	result.Duration = time.Since(start)
	p.log.Info("Emitted %d nodes with %d warnings in %s", result.NodesEmitted, result.Warnings, result.Duration)
	return result, nil
}

// Status returns the progress of the current or last run.
func (p *Pipeline) Status() driving.PipelineStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// fetchAll fetches every configured collection concurrently and returns
// the records in configured field order.
func (p *Pipeline) fetchAll(ctx context.Context) []*domain.Record {
	opts := domain.FetchOptions{PageSize: p.cfg.PerPage, Filter: p.cfg.Category}
	batches := make([][]*domain.Record, len(p.cfg.Fields))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)
	for i, field := range p.cfg.Fields {
		kind := domain.KindForPath(field)
		g.Go(func() error {
			raws := p.fetcher.Fetch(gctx, kind.Path, opts)
			batches[i] = BuildRecords(kind, raws)
			p.log.Debug("Fetched %d %s records", len(raws), kind.TypeTag())
			return nil
		})
	}
	_ = g.Wait()

	var records []*domain.Record
	for _, batch := range batches {
		records = append(records, batch...)
	}
	return records
}

func (p *Pipeline) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status.Running {
		return domain.ErrPipelineRunning
	}
	p.status = driving.PipelineStatus{Running: true, Stage: domain.StageIdle}
	return nil
}

func (p *Pipeline) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.Running = false
}

// enter moves the run to stage unless the context has been cancelled.
func (p *Pipeline) enter(ctx context.Context, stage domain.Stage, records int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}
	p.mu.Lock()
	p.status.Stage = stage
	p.status.Records = records
	p.mu.Unlock()
	p.log.Section(stage.String())
	return nil
}

func (p *Pipeline) setStage(stage domain.Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.Stage = stage
}

func withoutContext(
	fn func([]*domain.Record) []*domain.Record,
) func(context.Context, []*domain.Record) []*domain.Record {
	return func(_ context.Context, records []*domain.Record) []*domain.Record {
		return fn(records)
	}
}
