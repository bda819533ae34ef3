// Package todoist implements the task service port against the Todoist
// REST v2 API, with reminders going through the Sync v9 API (the REST
// API does not expose them).
package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the Todoist REST v2 endpoint.
	DefaultBaseURL = "https://api.todoist.com/rest/v2"

	// DefaultSyncURL is the Todoist Sync v9 endpoint, used for reminders.
	DefaultSyncURL = "https://api.todoist.com/sync/v9/sync"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxDescriptionLen is Todoist's task description limit.
	maxDescriptionLen = 16383
)

// Ensure Client implements the interface.
var _ driven.TaskService = (*Client)(nil)

// Client is a rate-limited Todoist API client. Project and label
// lookups are cached for the client's lifetime, which matches one
// process invocation.
type Client struct {
	baseURL     string
	syncURL     string
	http        *http.Client
	rateLimiter *RateLimiter

	mu       sync.Mutex
	projects map[string]string // name -> id
	labels   map[string]string // name -> id
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the REST and Sync endpoints. Used by tests.
func WithBaseURLs(baseURL, syncURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
		c.syncURL = syncURL
	}
}

// NewClient creates a Todoist client authenticated with the given token.
func NewClient(ctx context.Context, token string, opts ...Option) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = DefaultTimeout

	c := &Client{
		baseURL:     DefaultBaseURL,
		syncURL:     DefaultSyncURL,
		http:        hc,
		rateLimiter: NewRateLimiter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one API call: waits for the rate limiter, sends the
// request and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("todoist request: %w", err)
	}
	defer resp.Body.Close()

	c.rateLimiter.Observe(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return wrapStatus(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// get is a convenience wrapper over do for GET requests.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, c.baseURL+path, nil, out)
}

// post is a convenience wrapper over do for POST requests.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, c.baseURL+path, body, out)
}
