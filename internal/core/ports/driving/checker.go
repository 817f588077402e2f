package driving

import (
	"context"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

// CheckOrchestrator runs price checks and raises notifications.
type CheckOrchestrator interface {
	// CheckAll checks every tracked product once. One product's failure
	// never aborts the rest of the batch; the first error encountered
	// is returned after the batch completes.
	CheckAll(ctx context.Context) error

	// CheckProduct checks a single product on demand.
	CheckProduct(ctx context.Context, id string) error

	// Run executes scheduled checks until the context is cancelled.
	// It returns immediately if auto-checking is disabled.
	Run(ctx context.Context) error
}

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, applying defaults for unset keys.
	Get() (*domain.Settings, error)

	// Update validates and persists new settings.
	Update(settings domain.Settings) error
}
