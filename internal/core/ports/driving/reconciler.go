package driving

import (
	"context"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
)

// Reconciler runs one full pass over the feed: fetch, parse, diff
// against stored sync records and push the resulting create/update
// operations to the task service.
type Reconciler interface {
	// Run executes one reconciliation pass. It returns a report with
	// totals on success; a non-nil error means the run aborted before
	// any task service or state write (fatal configuration, fetch or
	// bootstrap failure). Per-assignment failures never produce an
	// error here, only a Failed count in the report.
	Run(ctx context.Context) (*domain.RunReport, error)
}
