package file

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
)

func minimalStore(t *testing.T) *ConfigStore {
	t.Helper()
	s := newTestStore(t)
	require.NoError(t, s.Set("feed.url", "https://canvas.example.edu/feed.ics"))
	require.NoError(t, s.Set("todoist.token", "file-token"))
	return s
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(minimalStore(t))
	require.NoError(t, err)

	assert.Equal(t, "https://canvas.example.edu/feed.ics", cfg.FeedURL)
	assert.Equal(t, "file-token", cfg.APIToken)
	assert.Equal(t, DefaultProjectName, cfg.ProjectName)
	assert.Equal(t, 1, cfg.ReminderDaysBefore)
	assert.False(t, cfg.CompletionEnabled)
	assert.Equal(t, time.Hour, cfg.SyncInterval)
	assert.Equal(t, domain.DefaultPriorityConfig(), cfg.Priority)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	s := minimalStore(t)
	require.NoError(t, s.Set("todoist.project", "From File"))

	t.Setenv(EnvFeedURL, "https://canvas.example.edu/env.ics")
	t.Setenv(EnvAPIToken, "env-token")
	t.Setenv(EnvProjectName, "From Env")

	cfg, err := LoadConfig(s)
	require.NoError(t, err)
	assert.Equal(t, "https://canvas.example.edu/env.ics", cfg.FeedURL)
	assert.Equal(t, "env-token", cfg.APIToken)
	assert.Equal(t, "From Env", cfg.ProjectName)
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	s := newTestStore(t)

	t.Setenv(EnvFeedURL, "https://canvas.example.edu/feed.ics")
	t.Setenv(EnvAPIToken, "env-token")
	t.Setenv(EnvStatePath, filepath.Join(t.TempDir(), "state.db"))

	cfg, err := LoadConfig(s)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.APIToken)
	assert.NotEmpty(t, cfg.StatePath)
}

func TestLoadConfig_MissingFeedURL(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set("todoist.token", "tok"))

	_, err := LoadConfig(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingConfig))
}

func TestLoadConfig_MissingToken(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set("feed.url", "https://canvas.example.edu/feed.ics"))

	_, err := LoadConfig(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingConfig))
}

func TestLoadConfig_CustomThresholds(t *testing.T) {
	s := minimalStore(t)
	require.NoError(t, s.Set("priority.urgent_days", 2))
	require.NoError(t, s.Set("priority.high_days", 5))
	require.NoError(t, s.Set("priority.medium_days", 14))

	cfg, err := LoadConfig(s)
	require.NoError(t, err)

	want := []domain.PriorityThreshold{
		{MaxDays: 2, Tier: domain.TierUrgent},
		{MaxDays: 5, Tier: domain.TierHigh},
		{MaxDays: 14, Tier: domain.TierMedium},
	}
	assert.Equal(t, want, cfg.Priority.Thresholds)
}

func TestLoadConfig_InvalidThresholdsRejected(t *testing.T) {
	s := minimalStore(t)
	// urgent_days above high_days breaks the ascending order.
	require.NoError(t, s.Set("priority.urgent_days", 10))

	_, err := LoadConfig(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestLoadConfig_ReminderAndInterval(t *testing.T) {
	s := minimalStore(t)
	require.NoError(t, s.Set("reminder.days_before", 0))
	require.NoError(t, s.Set("sync.interval_minutes", 15))
	require.NoError(t, s.Set("completion.enabled", true))

	cfg, err := LoadConfig(s)
	require.NoError(t, err)
	assert.Zero(t, cfg.ReminderDaysBefore)
	assert.Equal(t, 15*time.Minute, cfg.SyncInterval)
	assert.True(t, cfg.CompletionEnabled)
}
