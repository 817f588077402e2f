// Package cli implements the command-line driving adapter. Commands are
// thin: they parse flags, call driving port services and render output.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driving"
	"github.com/meridian-labs/pricewatch-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	trackerService  driving.TrackerService
	checkerService  driving.CheckOrchestrator
	settingsService driving.SettingsService

	// configPath is the settings file watched by the watch command;
	// configReload re-reads it into the config store.
	configPath   string
	configReload func() error
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pricewatch",
	Short: "Track product prices across retail sites",
	Long: `Pricewatch tracks consumer product prices across Amazon, eBay and
Walmart, keeps a price history per product and alerts on significant
drops or when a target price is reached.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Services bundles everything the commands need.
type Services struct {
	Tracker      driving.TrackerService
	Checker      driving.CheckOrchestrator
	Settings     driving.SettingsService
	ConfigPath   string
	ConfigReload func() error
}

// SetServices injects the service implementations.
func SetServices(s Services) {
	trackerService = s.Tracker
	checkerService = s.Checker
	settingsService = s.Settings
	configPath = s.ConfigPath
	configReload = s.ConfigReload
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
