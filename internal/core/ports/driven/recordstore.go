package driven

import (
	"context"
	"time"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
)

// RecordStore persists sync records. Save commits one record at a time,
// so a crash mid-run leaves every assignment processed so far in a
// consistent state and the rest is simply re-processed next run.
type RecordStore interface {
	// Load returns all sync records keyed by source ID.
	Load(ctx context.Context) (map[string]domain.SyncRecord, error)

	// Save stores or overwrites one sync record.
	Save(ctx context.Context, record domain.SyncRecord) error

	// Delete removes a sync record. Only the completion pass does this;
	// the reconcile decision table never deletes records.
	Delete(ctx context.Context, sourceID string) error

	// LastSync returns when the last run completed, or the zero time if
	// no run has completed yet.
	LastSync(ctx context.Context) (time.Time, error)

	// SetLastSync records when a run completed.
	SetLastSync(ctx context.Context, t time.Time) error
}
