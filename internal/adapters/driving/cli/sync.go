package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one reconciliation pass",
	Long: `Fetches the Canvas feed, diffs it against previously synced
state and creates or updates Todoist tasks. Prints run totals;
per-assignment failures are counted and retried on the next run.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if reconciler == nil {
		return errors.New("sync service not configured")
	}

	cmd.Println("Starting sync...")
	report, err := reconciler.Run(context.Background())
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Println("Sync complete!")
	cmd.Printf("  Created:   %d\n", report.Created)
	cmd.Printf("  Updated:   %d\n", report.Updated)
	cmd.Printf("  Skipped:   %d\n", report.Skipped)
	cmd.Printf("  Failed:    %d\n", report.Failed)
	if report.Completed > 0 {
		cmd.Printf("  Completed: %d\n", report.Completed)
	}
	if report.ParseWarnings > 0 {
		cmd.Printf("  Parse warnings: %d\n", report.ParseWarnings)
	}
	return nil
}
