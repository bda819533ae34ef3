package driven

import (
	"context"
	"time"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
)

// TaskRequest carries the fields pushed to the task service on create
// and update. Updates overwrite every field; the latest feed content
// wins over any manual edits made in the task service.
type TaskRequest struct {
	// Title is the task content line.
	Title string

	// Description is the task body, possibly empty.
	Description string

	// DueAt is the task due date.
	DueAt time.Time

	// Priority is the urgency tier; the adapter maps it to the
	// service's native scale.
	Priority domain.PriorityTier

	// ProjectID is the service-side project the task belongs to.
	ProjectID string

	// Labels are service-side label names attached to the task.
	Labels []string
}

// TaskService is the outbound contract to the task manager. All failures
// are per-call; the reconciler treats them as per-assignment failures,
// never as run aborts (except project bootstrap, which happens before
// any task operation).
type TaskService interface {
	// EnsureProject returns the ID of the named project, creating it if
	// it does not exist.
	EnsureProject(ctx context.Context, name string) (string, error)

	// EnsureLabel returns a usable label name for the given course
	// label, creating the label if needed. The returned name may differ
	// from the input after sanitisation.
	EnsureLabel(ctx context.Context, name string) (string, error)

	// CreateTask creates a task and returns its ID.
	CreateTask(ctx context.Context, req TaskRequest) (string, error)

	// UpdateTask overwrites an existing task's fields.
	UpdateTask(ctx context.Context, taskID string, req TaskRequest) error

	// TaskExists reports whether a task is still present (not deleted
	// or completed).
	TaskExists(ctx context.Context, taskID string) (bool, error)

	// CloseTask marks a task as complete.
	CloseTask(ctx context.Context, taskID string) error

	// AddReminder attaches a reminder to a task. Best effort: callers
	// log failures but never fail an assignment over one.
	AddReminder(ctx context.Context, taskID string, remindAt time.Time) error
}
