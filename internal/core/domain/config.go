package domain

import (
	"fmt"
	"strings"
	"time"
)

// Configuration defaults.
const (
	DefaultAPIVersion         = "wc/v3"
	DefaultWPAPIPrefix        = "wp-json"
	DefaultTimeout            = 30 * time.Second
	DefaultConcurrency        = 4
	DefaultMediaConcurrency   = 8
	DefaultTransportRate      = 5.0
	DefaultMaxIdleConnections = 10
)

// SourceConfig holds the catalog connection and pipeline settings.
type SourceConfig struct {
	// API is the catalog host (and optional path), without scheme.
	API string

	// HTTPS selects https over http.
	HTTPS bool

	// ConsumerKey and ConsumerSecret are the REST API credentials.
	ConsumerKey    string
	ConsumerSecret string

	// Fields are the collection paths to fetch, e.g. "products".
	Fields []string

	// APIVersion is the REST namespace, e.g. "wc/v3".
	APIVersion string

	// PerPage overrides the upstream page size when non-zero.
	PerPage int

	// WPAPIPrefix is the REST route prefix, e.g. "wp-json".
	WPAPIPrefix string

	// QueryStringAuth sends credentials as query parameters instead of
	// basic auth.
	QueryStringAuth bool

	// Port is an optional explicit port.
	Port string

	// Encoding is sent as the Accept-Charset header when set.
	Encoding string

	// Category filters every top-level fetch when set.
	Category string

	// Transport holds low-level HTTP overrides.
	Transport TransportConfig

	// Media configures the managed media store.
	Media MediaConfig

	// Concurrency bounds concurrent fetches and variation expansions.
	Concurrency int
}

// TransportConfig holds low-level HTTP overrides.
type TransportConfig struct {
	Timeout       time.Duration
	MaxIdleConns  int
	UserAgent     string
	RatePerSecond float64
	Headers       map[string]string
}

// MediaConfig configures media downloads.
type MediaConfig struct {
	// Dir is where downloaded files are stored.
	Dir string

	// Concurrency bounds concurrent per-record media resolution.
	Concurrency int
}

// ApplyDefaults fills unset optional values.
func (c *SourceConfig) ApplyDefaults() {
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.WPAPIPrefix == "" {
		c.WPAPIPrefix = DefaultWPAPIPrefix
	}
	if c.Transport.Timeout <= 0 {
		c.Transport.Timeout = DefaultTimeout
	}
	if c.Transport.MaxIdleConns <= 0 {
		c.Transport.MaxIdleConns = DefaultMaxIdleConnections
	}
	if c.Transport.RatePerSecond <= 0 {
		c.Transport.RatePerSecond = DefaultTransportRate
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.Media.Concurrency <= 0 {
		c.Media.Concurrency = DefaultMediaConcurrency
	}
}

// Validate checks the configuration is usable. Errors are fatal.
func (c *SourceConfig) Validate() error {
	if strings.TrimSpace(c.API) == "" {
		return fmt.Errorf("%w: api is required", ErrConfigInvalid)
	}
	if c.ConsumerKey == "" || c.ConsumerSecret == "" {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, ErrMissingCredentials)
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("%w: at least one field is required", ErrConfigInvalid)
	}
	for _, f := range c.Fields {
		if strings.Trim(f, "/ ") == "" {
			return fmt.Errorf("%w: empty field name", ErrConfigInvalid)
		}
	}
	if c.PerPage < 0 {
		return fmt.Errorf("%w: per_page must not be negative", ErrConfigInvalid)
	}
	return nil
}

// BaseURL returns the REST root, e.g. "https://shop.example/wp-json/wc/v3".
func (c *SourceConfig) BaseURL() string {
	scheme := "http"
	if c.HTTPS {
		scheme = "https"
	}

	host := strings.TrimRight(c.API, "/")
	rest := ""
	if i := strings.Index(host, "/"); i >= 0 {
		host, rest = host[:i], host[i:]
	}
	if c.Port != "" {
		host = host + ":" + c.Port
	}

	prefix := strings.Trim(c.WPAPIPrefix, "/")
	version := strings.Trim(c.APIVersion, "/")
	return fmt.Sprintf("%s://%s%s/%s/%s", scheme, host, rest, prefix, version)
}
