package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingConfig indicates a required configuration value is absent.
	// This is fatal at startup, never a per-assignment condition.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrFeedFetch indicates the calendar feed could not be retrieved.
	// Fatal for the run; distinct from per-entry parse warnings.
	ErrFeedFetch = errors.New("feed fetch failed")

	// ErrTaskService indicates a task service request failed.
	ErrTaskService = errors.New("task service request failed")

	// ErrAuthInvalid indicates the task service rejected the credential.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
