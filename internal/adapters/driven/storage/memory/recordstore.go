// Package memory provides an in-memory record store, used by tests and
// anywhere durable state is not wanted.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
	"github.com/DEVLlN/canvas-todoist-sync/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
type RecordStore struct {
	mu       sync.RWMutex
	records  map[string]domain.SyncRecord
	lastSync time.Time
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]domain.SyncRecord),
	}
}

// Load returns a copy of all sync records keyed by source ID.
func (s *RecordStore) Load(_ context.Context) (map[string]domain.SyncRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.SyncRecord, len(s.records))
	for k, v := range s.records {
		out[k] = v
	}
	return out, nil
}

// Save stores or overwrites one sync record.
func (s *RecordStore) Save(_ context.Context, record domain.SyncRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.SourceID] = record
	return nil
}

// Delete removes a sync record.
func (s *RecordStore) Delete(_ context.Context, sourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sourceID)
	return nil
}

// LastSync returns when the last run completed.
func (s *RecordStore) LastSync(_ context.Context) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSync, nil
}

// SetLastSync records when a run completed.
func (s *RecordStore) SetLastSync(_ context.Context, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSync = t
	return nil
}
