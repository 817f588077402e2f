// Command pricewatch tracks consumer product prices across retail sites.
package main

import (
	"fmt"
	"os"

	"github.com/meridian-labs/pricewatch-cli/internal/adapters/driven/config/file"
	"github.com/meridian-labs/pricewatch-cli/internal/adapters/driven/storage/sqlite"
	"github.com/meridian-labs/pricewatch-cli/internal/adapters/driving/cli"
	"github.com/meridian-labs/pricewatch-cli/internal/core/services"
	"github.com/meridian-labs/pricewatch-cli/internal/sources"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening product store: %w", err)
	}
	defer store.Close()

	registry := sources.NewDefaultRegistry()
	acquirer := services.NewAcquirer(
		registry,
		sources.NewRateLimiter(),
		sources.NewQuoteCache(),
		sources.NewFallbackPricer(),
	)

	settingsService := services.NewSettingsService(configStore)
	trackerService := services.NewTracker(store.ProductStore(), acquirer, registry, settingsService)
	checkerService := services.NewChecker(
		trackerService, acquirer, registry, settingsService, cli.NewConsoleNotifier())

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Tracker:      trackerService,
		Checker:      checkerService,
		Settings:     settingsService,
		ConfigPath:   configStore.Path(),
		ConfigReload: configStore.Load,
	})

	return cli.Execute()
}
