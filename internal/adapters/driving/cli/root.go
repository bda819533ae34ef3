// Package cli implements the cobra command surface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/ports/driven"
	"github.com/DEVLlN/canvas-todoist-sync/internal/core/ports/driving"
	"github.com/DEVLlN/canvas-todoist-sync/internal/logger"
)

var (
	version = "dev"

	cfgPath     string
	verboseFlag bool

	reconciler  driving.Reconciler
	scheduler   driving.Scheduler
	recordStore driven.RecordStore

	// initServices wires real services once flags are parsed. Set by
	// main; tests leave it nil and inject mocks directly.
	initServices func() error
)

var rootCmd = &cobra.Command{
	Use:   "canvas-todoist-sync",
	Short: "Sync Canvas assignments to Todoist",
	Long: `Reconciles a Canvas ICS calendar feed against Todoist,
creating and updating tasks for upcoming assignments without
duplicating anything already synced.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		if initServices != nil && reconciler == nil {
			return initServices()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default ~/.canvas-todoist-sync/config.toml)")
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetInit registers the service wiring hook, run after flag parsing.
func SetInit(fn func() error) {
	initServices = fn
}

// ConfigPath returns the --config flag value.
func ConfigPath() string {
	return cfgPath
}

// SetServices injects the services commands operate on.
func SetServices(r driving.Reconciler, s driving.Scheduler, rs driven.RecordStore) {
	reconciler = r
	scheduler = s
	recordStore = rs
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
