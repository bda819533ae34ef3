package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
)

type stubReconciler struct {
	report *domain.RunReport
	err    error
	runs   int
}

func (s *stubReconciler) Run(_ context.Context) (*domain.RunReport, error) {
	s.runs++
	return s.report, s.err
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		reconciler = nil
		scheduler = nil
		recordStore = nil
		rootCmd.SetArgs(nil)
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSyncCommand_PrintsTotals(t *testing.T) {
	rec := &stubReconciler{report: &domain.RunReport{Created: 2, Updated: 1, Skipped: 5}}
	SetServices(rec, nil, nil)

	out, err := execute(t, "sync")
	require.NoError(t, err)

	assert.Equal(t, 1, rec.runs)
	assert.Contains(t, out, "Created:   2")
	assert.Contains(t, out, "Updated:   1")
	assert.Contains(t, out, "Skipped:   5")
	assert.Contains(t, out, "Failed:    0")
	assert.NotContains(t, out, "Completed:")
	assert.NotContains(t, out, "Parse warnings:")
}

func TestSyncCommand_ShowsOptionalCounters(t *testing.T) {
	rec := &stubReconciler{report: &domain.RunReport{Created: 1, Completed: 3, ParseWarnings: 2}}
	SetServices(rec, nil, nil)

	out, err := execute(t, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed: 3")
	assert.Contains(t, out, "Parse warnings: 2")
}

func TestSyncCommand_PropagatesFailure(t *testing.T) {
	rec := &stubReconciler{err: errors.New("feed unreachable")}
	SetServices(rec, nil, nil)

	_, err := execute(t, "sync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed unreachable")
}

func TestSyncCommand_NotConfigured(t *testing.T) {
	SetServices(nil, nil, nil)

	_, err := execute(t, "sync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
