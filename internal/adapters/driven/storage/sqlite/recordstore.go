package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
	"github.com/DEVLlN/canvas-todoist-sync/internal/core/ports/driven"
)

const lastSyncKey = "last_sync"

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// Load returns all sync records keyed by source ID.
func (s *Store) Load(ctx context.Context) (map[string]domain.SyncRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_id, task_id, fingerprint, due_at, synced_at
		FROM sync_records
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sync records: %w", err)
	}
	defer rows.Close()

	records := make(map[string]domain.SyncRecord)
	for rows.Next() {
		var (
			rec      domain.SyncRecord
			dueAt    sql.NullTime
			syncedAt sql.NullTime
		)
		if err := rows.Scan(&rec.SourceID, &rec.TaskID, &rec.Fingerprint, &dueAt, &syncedAt); err != nil {
			return nil, fmt.Errorf("scanning sync record: %w", err)
		}
		if dueAt.Valid {
			rec.DueAt = dueAt.Time
		}
		if syncedAt.Valid {
			rec.SyncedAt = syncedAt.Time
		}
		records[rec.SourceID] = rec
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sync records: %w", err)
	}
	return records, nil
}

// Save stores or overwrites one sync record. Committed immediately so a
// crash later in the run cannot roll it back.
func (s *Store) Save(ctx context.Context, record domain.SyncRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_records (source_id, task_id, fingerprint, due_at, synced_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(source_id) DO UPDATE SET
			task_id = excluded.task_id,
			fingerprint = excluded.fingerprint,
			due_at = excluded.due_at,
			synced_at = excluded.synced_at
	`, record.SourceID, record.TaskID, record.Fingerprint, record.DueAt.UTC(), record.SyncedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving sync record %s: %w", record.SourceID, err)
	}
	return nil
}

// Delete removes a sync record.
func (s *Store) Delete(ctx context.Context, sourceID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sync_records WHERE source_id = ?", sourceID)
	if err != nil {
		return fmt.Errorf("deleting sync record %s: %w", sourceID, err)
	}
	return nil
}

// LastSync returns when the last run completed, or the zero time if no
// run has completed yet.
func (s *Store) LastSync(ctx context.Context) (time.Time, error) {
	var value string
	row := s.db.QueryRowContext(ctx, "SELECT value FROM sync_meta WHERE key = ?", lastSyncKey)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("querying last sync: %w", err)
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing last sync %q: %w", value, err)
	}
	return t, nil
}

// SetLastSync records when a run completed.
func (s *Store) SetLastSync(ctx context.Context, t time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, lastSyncKey, t.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving last sync: %w", err)
	}
	return nil
}

// Count returns the number of stored sync records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sync_records")
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting sync records: %w", err)
	}
	return n, nil
}
