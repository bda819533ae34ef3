// Command canvas-todoist-sync reconciles a Canvas ICS assignment feed
// against Todoist. Run `sync` for a one-shot pass (e.g. from cron or
// CI) or `serve` for a long-running interval loop.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/DEVLlN/canvas-todoist-sync/internal/adapters/driven/config/file"
	"github.com/DEVLlN/canvas-todoist-sync/internal/adapters/driven/storage/sqlite"
	"github.com/DEVLlN/canvas-todoist-sync/internal/adapters/driving/cli"
	"github.com/DEVLlN/canvas-todoist-sync/internal/connectors/canvas"
	"github.com/DEVLlN/canvas-todoist-sync/internal/connectors/todoist"
	"github.com/DEVLlN/canvas-todoist-sync/internal/core/services"
	"github.com/DEVLlN/canvas-todoist-sync/internal/feed/ics"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetInit(wire)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// wire builds the real service graph. Called by the CLI after flag
// parsing; any failure here is fatal and nothing has been written yet.
func wire() error {
	store, err := file.NewConfigStore(cli.ConfigPath())
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	cfg, err := file.LoadConfig(store)
	if err != nil {
		return err
	}

	records, err := sqlite.NewStore(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}

	reconciler := services.NewReconciler(
		canvas.NewFeedSource(cfg.FeedURL),
		ics.New(),
		todoist.NewClient(context.Background(), cfg.APIToken),
		records,
		*cfg,
	)
	scheduler := services.NewScheduler(cfg.SyncInterval, reconciler)

	cli.SetServices(reconciler, scheduler, records)
	return nil
}
