package woocommerce

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// HeaderRetryAfter is the retry-after header (seconds or HTTP date).
	HeaderRetryAfter = "Retry-After"

	// DefaultRetryAfter is used when a 429 carries no usable Retry-After.
	DefaultRetryAfter = 5 * time.Second
)

// RateLimiter throttles requests proactively and honours server pauses.
type RateLimiter struct {
	mu          sync.Mutex
	bucket      *rate.Limiter
	pausedUntil time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests per second.
// A non-positive rate disables proactive throttling.
func NewRateLimiter(perSecond float64) *RateLimiter {
	limit := rate.Inf
	burst := 1
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
		burst = max(1, int(perSecond))
	}
	return &RateLimiter{bucket: rate.NewLimiter(limit, burst)}
}

// Wait blocks until it is safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	pausedUntil := r.pausedUntil
	r.mu.Unlock()

	if wait := time.Until(pausedUntil); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.bucket.Wait(ctx)
}

// CheckRateLimit inspects a response. For 429 it pauses the limiter and
// returns a RateLimitError; otherwise it returns nil.
func (r *RateLimiter) CheckRateLimit(resp *http.Response) error {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}

	retryAt := time.Now().Add(parseRetryAfter(resp.Header.Get(HeaderRetryAfter)))

	r.mu.Lock()
	if retryAt.After(r.pausedUntil) {
		r.pausedUntil = retryAt
	}
	r.mu.Unlock()

	return &RateLimitError{RetryAt: retryAt}
}

// PausedUntil returns the time before which no request is sent.
func (r *RateLimiter) PausedUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pausedUntil
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return DefaultRetryAfter
	}
	if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
		return 0
	}
	return DefaultRetryAfter
}
