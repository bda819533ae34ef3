package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Assignment represents one upcoming item extracted from the calendar feed.
// It is the canonical representation after parsing; every Assignment that
// reaches the reconciler has a due date.
type Assignment struct {
	// SourceID is the feed's native unique event identifier (the VEVENT
	// UID). It is stable across fetches of the same logical assignment,
	// so content edits never change it.
	SourceID string

	// Title is the display name, with any trailing course bracket removed.
	Title string

	// CourseLabel is the short course identifier extracted from the
	// entry, or the sentinel label when no pattern matched.
	CourseLabel string

	// DueAt is when the assignment is due. Always set; entries without a
	// date never surface as Assignments.
	DueAt time.Time

	// Description is the entry's free-text body, possibly empty.
	Description string
}

// Fingerprint returns a deterministic content digest over title, due date
// and description. Identical content always produces the same digest, so
// comparing fingerprints across runs detects edits without storing the
// full entry. A missing description hashes as the empty string.
func (a Assignment) Fingerprint() string {
	content := fmt.Sprintf("%s|%s|%s",
		a.Title,
		a.DueAt.UTC().Format(time.RFC3339),
		a.Description,
	)
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// SyncRecord tracks a previously synced assignment: which remote task it
// maps to and the fingerprint of the content last pushed there. Records
// are created on first successful task creation and overwritten on every
// successful update. The reconcile pass never deletes them.
type SyncRecord struct {
	// SourceID links to the Assignment this record tracks.
	SourceID string

	// TaskID is the identifier of the corresponding task in the task
	// service.
	TaskID string

	// Fingerprint is the content digest at the time of the last
	// successful create or update.
	Fingerprint string

	// DueAt is the due date last pushed to the task service. Used by the
	// optional completion pass to tell a submitted assignment from an
	// expired one.
	DueAt time.Time

	// SyncedAt is when this record was last written.
	SyncedAt time.Time
}
