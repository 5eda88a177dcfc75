// Package file provides a media store that downloads remote files into a
// local directory and records them in a file registry.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driven"
)

// MaxExtensionLength bounds file extensions taken from URLs.
const MaxExtensionLength = 8

// Ensure Store implements the interface.
var _ driven.MediaStore = (*Store)(nil)

// Store downloads media to <dir>/<uuid><ext>.
type Store struct {
	dir      string
	http     *http.Client
	registry driven.FileRegistry
	now      func() time.Time
}

// NewStore creates a media store writing into dir.
func NewStore(dir string, httpClient *http.Client, registry driven.FileRegistry) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: media directory is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating media directory: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: domain.DefaultTimeout}
	}
	return &Store{
		dir:      dir,
		http:     httpClient,
		registry: registry,
		now:      time.Now,
	}, nil
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Download fetches rawURL and stores it as a new file owned by ownerID.
func (s *Store) Download(ctx context.Context, rawURL, ownerID string) (*domain.FileRef, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDownloadFailed, rawURL, err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDownloadFailed, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrDownloadFailed, rawURL, resp.Status)
	}

	id := uuid.NewString()
	target := filepath.Join(s.dir, id+extension(rawURL))

	size, err := writeFile(target, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDownloadFailed, rawURL, err)
	}

	now := s.now()
	file := domain.FileRef{
		ID:        id,
		URL:       rawURL,
		Path:      target,
		OwnerID:   ownerID,
		Size:      size,
		CreatedAt: now,
		TouchedAt: now,
	}
	if err := s.registry.Register(ctx, file); err != nil {
		_ = os.Remove(target)
		return nil, fmt.Errorf("registering %s: %w", id, err)
	}
	return &file, nil
}

// Touch marks a stored file as still in use. It returns domain.ErrNotFound
// when the file is unknown or no longer on disk.
func (s *Store) Touch(ctx context.Context, fileID string) error {
	file, err := s.registry.Get(ctx, fileID)
	if err != nil {
		return err
	}
	if _, err := os.Stat(file.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("stat %s: %w", file.Path, err)
	}
	return s.registry.Touch(ctx, fileID, s.now())
}

// writeFile writes r to target through a temporary file so a partial
// download never appears under the final name.
func writeFile(target string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".download-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return 0, err
	}
	return size, nil
}

// extension returns the lower-cased extension of the URL path, or "" when
// it is missing or implausibly long.
func extension(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	if len(ext) < 2 || len(ext) > MaxExtensionLength {
		return ""
	}
	return ext
}
