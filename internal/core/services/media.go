package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driven"
	"github.com/custodia-labs/wcgraph/internal/logger"
)

// Media field names.
const (
	FieldImages       = "images"
	FieldImage        = "image"
	FieldCustomFields = "acf"
	FieldLocalFile    = "local_file"
)

// imageExtensions mark custom-field strings that reference images.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// MediaResolver downloads media referenced by records and attaches the
// resolved file ids. Downloads are skipped when the media cache holds an
// entry recorded for the owning record's current modification stamp.
type MediaResolver struct {
	store       driven.MediaStore
	cache       driven.MediaCache
	concurrency int
	log         *logger.Logger
	locks       keyLocks
}

// NewMediaResolver creates a media resolver.
func NewMediaResolver(
	store driven.MediaStore,
	cache driven.MediaCache,
	concurrency int,
	log *logger.Logger,
) *MediaResolver {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &MediaResolver{
		store:       store,
		cache:       cache,
		concurrency: concurrency,
		log:         log,
	}
}

// Resolve resolves media for every record. Records are processed
// concurrently; a failed download only omits that one reference.
func (m *MediaResolver) Resolve(ctx context.Context, records []*domain.Record) []*domain.Record {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)

	for _, rec := range records {
		g.Go(func() error {
			m.resolveRecord(gctx, rec)
			return nil
		})
	}

	_ = g.Wait()
	return records
}

func (m *MediaResolver) resolveRecord(ctx context.Context, rec *domain.Record) {
	if variations, ok := domain.AsList(rec.Fields[FieldProductVariations]); ok {
		for _, v := range variations {
			variation, isMap := domain.AsMap(v)
			if !isMap {
				continue
			}
			if image, hasImage := domain.AsMap(variation[FieldImage]); hasImage {
				m.resolveImage(ctx, rec, image)
			}
		}
	}

	if acf, ok := domain.AsMap(rec.Fields[FieldCustomFields]); ok {
		m.resolveCustomFields(ctx, rec, acf)
	}

	if images, ok := domain.AsList(rec.Fields[FieldImages]); ok && len(images) > 0 {
		for _, img := range images {
			if image, isMap := domain.AsMap(img); isMap {
				m.resolveImage(ctx, rec, image)
			}
		}
		return
	}

	if image, ok := domain.AsMap(rec.Fields[FieldImage]); ok {
		if _, hasID := image[domain.FieldID]; hasID {
			m.resolveImage(ctx, rec, image)
		}
	}
}

// resolveImage resolves a catalog image object in place.
func (m *MediaResolver) resolveImage(ctx context.Context, rec *domain.Record, image map[string]any) {
	src, ok := domain.AsString(image["src"])
	if !ok {
		return
	}

	id, hasID := image[domain.FieldID]
	if !hasID {
		id = src
	}

	if fileID, resolved := m.resolve(ctx, rec, domain.MediaCacheKey(id), src); resolved {
		image[FieldLocalFile] = fileID
	}
}

// resolveCustomFields resolves every image URL in the custom-field map.
// Resolutions run concurrently; results are written only after all of
// them have finished so the map is never written concurrently.
func (m *MediaResolver) resolveCustomFields(ctx context.Context, rec *domain.Record, acf map[string]any) {
	fields := make([]string, 0, len(acf))
	for field, val := range acf {
		if s, ok := val.(string); ok && isImageURL(s) {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return
	}
	sort.Strings(fields)

	fileIDs := make([]string, len(fields))
	var g errgroup.Group
	for i, field := range fields {
		src := acf[field].(string)
		g.Go(func() error {
			if fileID, ok := m.resolve(ctx, rec, domain.CustomFieldMediaCacheKey(src), src); ok {
				fileIDs[i] = fileID
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, field := range fields {
		if fileIDs[i] != "" {
			acf[field+"_"+FieldLocalFile] = fileIDs[i]
		}
	}
}

// resolve returns the file id for one media item, reusing the cache when
// the owner's modification stamp matches and downloading otherwise.
func (m *MediaResolver) resolve(ctx context.Context, rec *domain.Record, key, src string) (string, bool) {
	unlock := m.locks.lock(key)
	defer unlock()

	modified := rec.Modified()

	entry, err := m.cache.Get(ctx, key)
	switch {
	case err == nil && entry.Fresh(modified):
		touchErr := m.store.Touch(ctx, entry.FileID)
		if touchErr == nil {
			return entry.FileID, true
		}
		if !errors.Is(touchErr, domain.ErrNotFound) {
			m.log.Debug("Touch %s failed: %v", entry.FileID, touchErr)
			return entry.FileID, true
		}
		m.log.Debug("Cached file %s for %s is gone, downloading again", entry.FileID, key)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		m.log.Debug("Media cache read %s failed: %v", key, err)
	}

	file, err := m.store.Download(ctx, src, rec.NodeID)
	if err != nil || file == nil {
		m.log.Debug("Download %s for node %s failed: %v", src, rec.NodeID, err)
		return "", false
	}

	if err := m.cache.Set(ctx, key, domain.MediaCacheEntry{FileID: file.ID, Modified: modified}); err != nil {
		m.log.Debug("Media cache write %s failed: %v", key, err)
	}
	return file.ID, true
}

func isImageURL(s string) bool {
	lower := strings.ToLower(s)
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}

// keyLocks serialises work per media cache key.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyLocks) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
