// Package canvas fetches the Canvas ICS calendar feed. Canvas feed URLs
// embed a per-user token, so no separate credential is needed here.
package canvas

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/ports/driven"
	"github.com/DEVLlN/canvas-todoist-sync/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of retries for transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second

	// maxFeedSize caps the feed body to guard against a misconfigured URL
	// pointing at something enormous.
	maxFeedSize = 16 << 20
)

// Ensure FeedSource implements the interface.
var _ driven.FeedSource = (*FeedSource)(nil)

// FeedSource fetches the raw ICS feed over HTTP.
type FeedSource struct {
	url    string
	client *http.Client
}

// NewFeedSource creates a feed source for the given ICS URL.
func NewFeedSource(url string) *FeedSource {
	return &FeedSource{
		url:    url,
		client: &http.Client{Timeout: DefaultTimeout},
	}
}

// Fetch retrieves the feed bytes, retrying transient failures with
// linear backoff. Any terminal failure is an overall failure for the
// run; per-entry problems are the parser's concern.
func (f *FeedSource) Fetch(ctx context.Context) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			logger.Debug("Retrying feed fetch (attempt %d)", attempt+1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(RetryDelay * time.Duration(attempt)):
			}
		}

		data, retryable, err := f.fetchOnce(ctx)
		if err == nil {
			logger.Info("Fetched ICS feed (%d bytes)", len(data))
			return data, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return nil, lastErr
}

// fetchOnce performs a single GET. The second return reports whether the
// failure is worth retrying (network errors and 5xx responses are, 4xx
// responses are not).
func (f *FeedSource) fetchOnce(ctx context.Context) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "text/calendar")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= 500
		return nil, retryable, fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, true, fmt.Errorf("read feed body: %w", err)
	}
	return data, false, nil
}
