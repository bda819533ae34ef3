package domain

import "time"

// RunReport summarises one reconciliation run. A completed run always
// carries totals, even when some assignments failed; failed assignments
// keep their old sync records and are retried on the next run.
type RunReport struct {
	// StartedAt is when the run began.
	StartedAt time.Time

	// EndedAt is when the run finished.
	EndedAt time.Time

	// Created is the number of tasks created.
	Created int

	// Updated is the number of tasks updated.
	Updated int

	// Skipped is the number of assignments whose content was unchanged.
	Skipped int

	// Failed is the number of assignments whose task service call failed.
	Failed int

	// Completed is the number of tasks closed by the completion pass.
	Completed int

	// PastDue is the number of feed entries dropped for being in the past.
	PastDue int

	// ParseWarnings is the number of feed entries skipped during parsing.
	ParseWarnings int
}

// Total returns the number of assignments that reached the decision table.
func (r *RunReport) Total() int {
	return r.Created + r.Updated + r.Skipped + r.Failed
}
