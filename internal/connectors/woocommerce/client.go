package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driven"
)

const (
	// HeaderTotalPages carries the page count of a collection.
	HeaderTotalPages = "X-WP-TotalPages"

	// DefaultUserAgent identifies the client to the shop.
	DefaultUserAgent = "wcgraph"
)

// Ensure Client implements the interface.
var _ driven.CatalogTransport = (*Client)(nil)

// Client talks to the WooCommerce REST API.
type Client struct {
	http        *http.Client
	baseURL     string
	cfg         domain.SourceConfig
	rateLimiter *RateLimiter
}

// NewHTTPClient builds the pooled HTTP client used for API calls and
// media downloads.
func NewHTTPClient(cfg domain.TransportConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}
	idle := cfg.MaxIdleConns
	if idle <= 0 {
		idle = domain.DefaultMaxIdleConnections
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        idle * 10,
			MaxIdleConnsPerHost: idle,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// NewClient creates an API client. The configuration must be validated.
func NewClient(cfg domain.SourceConfig, httpClient *http.Client) *Client {
	cfg.ApplyDefaults()
	if httpClient == nil {
		httpClient = NewHTTPClient(cfg.Transport)
	}
	return &Client{
		http:        httpClient,
		baseURL:     cfg.BaseURL(),
		cfg:         cfg,
		rateLimiter: NewRateLimiter(cfg.Transport.RatePerSecond),
	}
}

// BaseURL returns the REST root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// ListPage fetches one page of a collection. Non-success statuses are
// reported through Page.StatusOK rather than as an error; transport
// failures, rate limiting and undecodable bodies are errors.
func (c *Client) ListPage(ctx context.Context, path string, q domain.PageQuery) (*domain.Page, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(max(q.Page, 1)))
	if q.PageSize > 0 {
		params.Set("per_page", strconv.Itoa(q.PageSize))
	}
	if q.Filter != "" {
		params.Set("category", q.Filter)
	}

	resp, body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.Page{StatusOK: false, Status: resp.Status}, nil
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s page %d: %w", path, q.Page, err)
	}

	totalPages, _ := strconv.Atoi(resp.Header.Get(HeaderTotalPages))
	return &domain.Page{
		Records:    records,
		TotalPages: totalPages,
		StatusOK:   true,
		Status:     resp.Status,
	}, nil
}

// Validate checks the shop answers with the configured credentials.
func (c *Client) Validate(ctx context.Context) error {
	params := url.Values{}
	params.Set("per_page", "1")

	resp, _, err := c.get(ctx, domain.PathProducts, params)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status, URL: c.endpoint(domain.PathProducts)}
	}
	return nil
}

// get performs an authenticated GET and returns the response with its body.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, []byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if c.cfg.QueryStringAuth {
		params.Set("consumer_key", c.cfg.ConsumerKey)
		params.Set("consumer_secret", c.cfg.ConsumerSecret)
	}

	endpoint := c.endpoint(path)
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := c.rateLimiter.CheckRateLimit(resp); err != nil {
		return nil, nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return resp, body, nil
}

func (c *Client) decorate(req *http.Request) {
	if !c.cfg.QueryStringAuth {
		req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)
	}

	userAgent := c.cfg.Transport.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.cfg.Encoding != "" {
		req.Header.Set("Accept-Charset", c.cfg.Encoding)
	}
	for k, v := range c.cfg.Transport.Headers {
		req.Header.Set(k, v)
	}
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + "/" + strings.Trim(path, "/")
}

// decodeRecords decodes a JSON array of objects, keeping numbers exact.
func decodeRecords(body []byte) ([]domain.RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var items []map[string]any
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	records := make([]domain.RawRecord, 0, len(items))
	for _, item := range items {
		records = append(records, domain.RawRecord(item))
	}
	return records, nil
}
