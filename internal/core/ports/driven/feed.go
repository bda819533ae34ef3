package driven

import (
	"context"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
)

// FeedSource retrieves the raw calendar feed.
type FeedSource interface {
	// Fetch returns the raw feed bytes. A fetch failure is an overall
	// failure for the run, distinct from per-entry parse warnings.
	Fetch(ctx context.Context) ([]byte, error)
}

// FeedParser converts raw feed bytes into assignments.
type FeedParser interface {
	// Parse extracts assignments from raw calendar bytes. Malformed
	// entries and entries without a due date are skipped individually;
	// the returned count reports how many were skipped. An error is
	// returned only when the feed as a whole is unusable.
	Parse(data []byte) (assignments []domain.Assignment, skipped int, err error)
}
