package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync state",
	Long:  `Prints how many assignments are tracked and when the last run completed.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if recordStore == nil {
		return errors.New("record store not configured")
	}

	ctx := context.Background()

	records, err := recordStore.Load(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("Tracked assignments: %d\n", len(records))

	lastSync, err := recordStore.LastSync(ctx)
	if err != nil {
		return err
	}
	if lastSync.IsZero() {
		cmd.Println("Last sync: never")
	} else {
		cmd.Printf("Last sync: %s\n", lastSync.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
