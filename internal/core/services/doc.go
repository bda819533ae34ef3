// Package services contains the core application logic: the reconciler
// that diffs the calendar feed against previously synced state, and the
// scheduler that re-runs it in serve mode.
package services
