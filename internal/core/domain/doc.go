// Package domain contains the core types for assignment synchronisation:
// assignments parsed from the calendar feed, the sync records that track
// what has already been pushed to the task service, and priority
// classification. Types here are pure values with no I/O.
package domain
