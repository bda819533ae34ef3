package domain

import (
	"fmt"
	"time"
)

// Config holds everything a run needs. Values come from the config file
// and environment; the reconciler receives them fully validated, so a
// missing required value aborts startup rather than surfacing mid-run.
type Config struct {
	// FeedURL is the authenticated Canvas ICS feed URL.
	FeedURL string

	// APIToken is the Todoist API credential.
	APIToken string

	// ProjectName is the Todoist project tasks are created in.
	ProjectName string

	// StatePath is where sync records are persisted.
	StatePath string

	// Priority holds the day-threshold to tier mapping.
	Priority PriorityConfig

	// ReminderDaysBefore schedules a reminder this many days before the
	// due date on newly created tasks. Zero disables reminders.
	ReminderDaysBefore int

	// CompletionEnabled turns on the pass that closes tasks for
	// assignments that vanished from the feed while still due.
	CompletionEnabled bool

	// SyncInterval is the delay between runs in serve mode.
	SyncInterval time.Duration
}

// Validate checks required values are present and thresholds are sane.
func (c *Config) Validate() error {
	if c.FeedURL == "" {
		return fmt.Errorf("%w: feed URL", ErrMissingConfig)
	}
	if c.APIToken == "" {
		return fmt.Errorf("%w: Todoist API token", ErrMissingConfig)
	}
	if c.ProjectName == "" {
		return fmt.Errorf("%w: project name", ErrMissingConfig)
	}
	if c.ReminderDaysBefore < 0 {
		return fmt.Errorf("%w: reminder days must not be negative", ErrInvalidInput)
	}
	return c.Priority.Validate()
}
