package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEVLlN/canvas-todoist-sync/internal/adapters/driven/storage/memory"
	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
)

func TestStatusCommand_Empty(t *testing.T) {
	SetServices(nil, nil, memory.NewRecordStore())

	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Tracked assignments: 0")
	assert.Contains(t, out, "Last sync: never")
}

func TestStatusCommand_WithState(t *testing.T) {
	store := memory.NewRecordStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.SyncRecord{SourceID: "uid-1", TaskID: "task-1"}))
	require.NoError(t, store.Save(ctx, domain.SyncRecord{SourceID: "uid-2", TaskID: "task-2"}))
	require.NoError(t, store.SetLastSync(ctx, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
	SetServices(nil, nil, store)

	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Tracked assignments: 2")
	assert.Contains(t, out, "Last sync: ")
	assert.NotContains(t, out, "never")
}

func TestStatusCommand_NotConfigured(t *testing.T) {
	SetServices(nil, nil, nil)

	_, err := execute(t, "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
