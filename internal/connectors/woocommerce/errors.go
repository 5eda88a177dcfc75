package woocommerce

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrInvalidResponse indicates a response body that is not a JSON array.
var ErrInvalidResponse = errors.New("woocommerce: invalid response body")

// RateLimitError is returned when the API answers 429.
type RateLimitError struct {
	RetryAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("woocommerce: rate limit exceeded, retry at %s", e.RetryAt.Format(time.RFC3339))
}

// APIError represents a non-success API response.
type APIError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("woocommerce: API error %s (URL: %s)", e.Status, e.URL)
}

// IsNotFound checks if the error indicates a missing route or resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized checks if the error indicates rejected credentials.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}
