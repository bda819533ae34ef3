package driving

import "context"

// Scheduler repeatedly triggers reconciliation runs at a fixed interval.
// Runs are executed inline in the loop, so they never overlap.
type Scheduler interface {
	// Start begins the loop. It blocks until the context is cancelled
	// or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the loop, waiting for an in-flight
	// run to finish.
	Stop() error
}
