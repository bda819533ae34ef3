package file

import (
	"os"
	"time"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
	"github.com/DEVLlN/canvas-todoist-sync/internal/core/ports/driven"
)

// Environment variables override file values for secrets, matching how
// the tool is deployed from CI where only env is available.
const (
	EnvFeedURL     = "CANVAS_ICS_URL"
	EnvAPIToken    = "TODOIST_API_TOKEN"
	EnvProjectName = "TODOIST_PROJECT_NAME"
	EnvStatePath   = "STATE_FILE"
)

// DefaultProjectName is used when no project is configured.
const DefaultProjectName = "Canvas Assignments"

// LoadConfig assembles a validated domain.Config from a config store
// plus environment overrides. A missing required value is a fatal
// startup error.
func LoadConfig(store driven.ConfigStore) (*domain.Config, error) {
	cfg := &domain.Config{
		FeedURL:            stringOr(store.GetString("feed.url"), os.Getenv(EnvFeedURL)),
		APIToken:           stringOr(store.GetString("todoist.token"), os.Getenv(EnvAPIToken)),
		ProjectName:        stringOr(store.GetString("todoist.project"), os.Getenv(EnvProjectName)),
		StatePath:          stringOr(store.GetString("state.path"), os.Getenv(EnvStatePath)),
		Priority:           priorityFrom(store),
		ReminderDaysBefore: intOr(store, "reminder.days_before", 1),
		CompletionEnabled:  store.GetBool("completion.enabled"),
		SyncInterval:       time.Duration(intOr(store, "sync.interval_minutes", 60)) * time.Minute,
	}

	if cfg.ProjectName == "" {
		cfg.ProjectName = DefaultProjectName
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// priorityFrom builds the threshold table from config, falling back to
// the default mapping when a value is absent.
func priorityFrom(store driven.ConfigStore) domain.PriorityConfig {
	def := domain.DefaultPriorityConfig()
	return domain.PriorityConfig{
		Thresholds: []domain.PriorityThreshold{
			{MaxDays: intOr(store, "priority.urgent_days", def.Thresholds[0].MaxDays), Tier: domain.TierUrgent},
			{MaxDays: intOr(store, "priority.high_days", def.Thresholds[1].MaxDays), Tier: domain.TierHigh},
			{MaxDays: intOr(store, "priority.medium_days", def.Thresholds[2].MaxDays), Tier: domain.TierMedium},
		},
		Default: domain.TierNormal,
	}
}

func stringOr(fileValue, envValue string) string {
	if envValue != "" {
		return envValue
	}
	return fileValue
}

func intOr(store driven.ConfigStore, key string, fallback int) int {
	if _, ok := store.Get(key); !ok {
		return fallback
	}
	return store.GetInt(key)
}
