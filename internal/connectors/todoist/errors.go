package todoist

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
)

// APIError represents a Todoist API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("todoist: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// wrapStatus converts a non-2xx response into a domain-tagged error so
// the core can distinguish auth failures and rate limiting from
// ordinary request failures.
func wrapStatus(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(body)),
		URL:        resp.Request.URL.String(),
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", domain.ErrAuthInvalid, apiErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, apiErr)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, apiErr)
	default:
		return fmt.Errorf("%w: %w", domain.ErrTaskService, apiErr)
	}
}
