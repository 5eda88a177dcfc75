package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driven"
	"github.com/custodia-labs/wcgraph/internal/logger"
)

// --- Fakes shared by the services tests ---

func testLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.New(&buf, false), &buf
}

// fakeTransport serves canned pages per collection path.
type fakeTransport struct {
	mu      sync.Mutex
	pages   map[string][]domain.Page
	errs    map[string]map[int]error
	queries map[string][]domain.PageQuery
}

var _ driven.CatalogTransport = (*fakeTransport)(nil)

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		pages:   make(map[string][]domain.Page),
		errs:    make(map[string]map[int]error),
		queries: make(map[string][]domain.PageQuery),
	}
}

// serve registers the records of every page of path; TotalPages is set
// to the number of pages given.
func (t *fakeTransport) serve(path string, pages ...[]domain.RawRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, records := range pages {
		t.pages[path] = append(t.pages[path], domain.Page{
			Records:    records,
			TotalPages: len(pages),
			StatusOK:   true,
			Status:     "200 OK",
		})
	}
}

func (t *fakeTransport) fail(path string, page int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.errs[path] == nil {
		t.errs[path] = make(map[int]error)
	}
	t.errs[path][page] = err
}

func (t *fakeTransport) ListPage(_ context.Context, path string, q domain.PageQuery) (*domain.Page, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queries[path] = append(t.queries[path], q)

	if err := t.errs[path][q.Page]; err != nil {
		return nil, err
	}
	pages := t.pages[path]
	if q.Page < 1 || q.Page > len(pages) {
		return &domain.Page{Status: "404 Not Found"}, nil
	}
	page := pages[q.Page-1]
	return &page, nil
}

func (t *fakeTransport) calls(path string) []domain.PageQuery {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.PageQuery(nil), t.queries[path]...)
}

// fakeMediaStore records downloads and touches.
type fakeMediaStore struct {
	mu        sync.Mutex
	downloads []string
	touches   []string
	failURLs  map[string]bool
	gone      map[string]bool
}

var _ driven.MediaStore = (*fakeMediaStore)(nil)

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{failURLs: make(map[string]bool), gone: make(map[string]bool)}
}

func (s *fakeMediaStore) Download(_ context.Context, url, ownerID string) (*domain.FileRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failURLs[url] {
		return nil, fmt.Errorf("%w: %s", domain.ErrDownloadFailed, url)
	}
	s.downloads = append(s.downloads, url)
	return &domain.FileRef{
		ID:        fmt.Sprintf("file-%d", len(s.downloads)),
		URL:       url,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}, nil
}

func (s *fakeMediaStore) Touch(_ context.Context, fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gone[fileID] {
		return domain.ErrNotFound
	}
	s.touches = append(s.touches, fileID)
	return nil
}

func (s *fakeMediaStore) downloadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.downloads)
}

func (s *fakeMediaStore) touchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.touches)
}

// fakeMediaCache is a map backed media cache counting writes.
type fakeMediaCache struct {
	mu      sync.Mutex
	entries map[string]domain.MediaCacheEntry
	sets    int
}

var _ driven.MediaCache = (*fakeMediaCache)(nil)

func newFakeMediaCache() *fakeMediaCache {
	return &fakeMediaCache{entries: make(map[string]domain.MediaCacheEntry)}
}

func (c *fakeMediaCache) Get(_ context.Context, key string) (*domain.MediaCacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (c *fakeMediaCache) Set(_ context.Context, key string, entry domain.MediaCacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
	c.sets++
	return nil
}

func (c *fakeMediaCache) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

// fakeSink collects emitted nodes.
type fakeSink struct {
	mu      sync.Mutex
	nodes   []*domain.Node
	failOn  int
	emitted int
}

var _ driven.NodeSink = (*fakeSink)(nil)

var errSinkFull = errors.New("sink full")

func (s *fakeSink) CreateNode(_ context.Context, node *domain.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitted++
	if s.failOn > 0 && s.emitted == s.failOn {
		return errSinkFull
	}
	s.nodes = append(s.nodes, node)
	return nil
}

func (s *fakeSink) byType(typeTag string) []*domain.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Node
	for _, n := range s.nodes {
		if n.Internal.Type == typeTag {
			out = append(out, n)
		}
	}
	return out
}

// record builds a record of kind from a raw field map.
func record(path string, raw domain.RawRecord) *domain.Record {
	kind := domain.KindForPath(path)
	id, _ := domain.AsInt64(raw[domain.FieldID])
	return domain.NewRecord(kind, StableID(kind, id), raw)
}
