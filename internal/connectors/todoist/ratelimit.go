package todoist

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ProactiveRate throttles well under Todoist's 450 requests per
	// 15 minutes (0.5/sec) so a large feed never trips the limit.
	ProactiveRate = 0.4

	// Burst allows short request bursts before throttling kicks in.
	Burst = 5

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter combines proactive token-bucket throttling with reactive
// backoff when the API answers 429.
type RateLimiter struct {
	mu         sync.Mutex
	bucket     *rate.Limiter
	retryAfter time.Time
}

// NewRateLimiter creates a rate limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(ProactiveRate), Burst),
	}
}

// Wait blocks until it is safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	until := r.retryAfter
	r.mu.Unlock()

	if wait := time.Until(until); wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return r.bucket.Wait(ctx)
}

// Observe updates reactive state from an API response.
func (r *RateLimiter) Observe(resp *http.Response) {
	if resp.StatusCode != http.StatusTooManyRequests {
		return
	}

	seconds, err := strconv.Atoi(resp.Header.Get(HeaderRetryAfter))
	if err != nil || seconds <= 0 {
		seconds = 30
	}

	r.mu.Lock()
	r.retryAfter = time.Now().Add(time.Duration(seconds) * time.Second)
	r.mu.Unlock()
}
