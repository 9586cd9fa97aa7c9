package customsearch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Default throttle. The free Custom Search tier allows 100 queries a day,
// so one per second with a small burst is far below any per-second limit.
const (
	DefaultRequestsPerSecond = 1.0
	DefaultBurst             = 5

	// defaultBackoff applies when a 429 carries no Retry-After.
	defaultBackoff = 60 * time.Second
)

// RateLimiter throttles outbound requests with a token bucket and an
// optional back-off window after a rate limit response.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a rate limiter. Non-positive values use the defaults.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until a request may be sent, honouring any back-off window.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError opens a back-off window. A non-positive retryAfter
// uses the default of one minute.
func (r *RateLimiter) RecordRateLimitError(retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfter <= 0 {
		retryAfter = defaultBackoff
	}
	r.retryAt = time.Now().Add(retryAfter)
}

// backoffUntil returns the end of the current back-off window, or the zero
// time if none was recorded.
func (r *RateLimiter) backoffUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAt
}

// allow reports whether a request may be sent immediately, consuming a
// token if so.
func (r *RateLimiter) allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}
	return r.limiter.Allow()
}
