package domain

import (
	"fmt"
	"time"
)

// MediaCacheEntry records a resolved media download.
type MediaCacheEntry struct {
	// FileID references the downloaded file.
	FileID string `json:"fileNodeID"`

	// Modified is the owning record's modification stamp at download time.
	Modified string `json:"modified"`
}

// Fresh reports whether the entry can be reused for a record with the
// given modification stamp. Only an exact match counts.
func (e *MediaCacheEntry) Fresh(modified string) bool {
	return e != nil && e.FileID != "" && e.Modified == modified
}

// FileRef is a file held by the managed media store.
type FileRef struct {
	// ID is the file identifier referenced from nodes.
	ID string

	// URL is the source the file was downloaded from.
	URL string

	// Path is the local file path.
	Path string

	// OwnerID is the node that first requested the file.
	OwnerID string

	// Size is the file size in bytes.
	Size int64

	// CreatedAt is when the file was downloaded.
	CreatedAt time.Time

	// TouchedAt is the last time a run reused the file.
	TouchedAt time.Time
}

// MediaCacheKey returns the cache key for a catalog image id.
func MediaCacheKey(mediaID any) string {
	if id, ok := AsInt64(mediaID); ok {
		return fmt.Sprintf("wordpress-media-%d", id)
	}
	return fmt.Sprintf("wordpress-media-%v", mediaID)
}

// CustomFieldMediaCacheKey returns the cache key for a custom-field image URL.
func CustomFieldMediaCacheKey(src string) string {
	return "woocommerce-acf-media-" + src
}
