package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driven"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driving"
	"github.com/meridian-labs/pricewatch-cli/internal/logger"
)

// Ensure Checker implements the interface.
var _ driving.CheckOrchestrator = (*Checker)(nil)

// Checker walks tracked products, acquires fresh quotes per enabled
// source, records the results and raises edge-triggered notifications.
type Checker struct {
	tracker  driving.TrackerService
	acquirer *Acquirer
	registry driven.SourceRegistry
	settings driving.SettingsService
	notifier driven.Notifier

	// inFlight tracks products currently in the checking state so a
	// manual refresh cannot double-check one mid-tick.
	mu       sync.Mutex
	inFlight map[string]bool
}

// NewChecker creates a check orchestrator. The notifier may be nil.
func NewChecker(
	tracker driving.TrackerService,
	acquirer *Acquirer,
	registry driven.SourceRegistry,
	settings driving.SettingsService,
	notifier driven.Notifier,
) *Checker {
	return &Checker{
		tracker:  tracker,
		acquirer: acquirer,
		registry: registry,
		settings: settings,
		notifier: notifier,
		inFlight: make(map[string]bool),
	}
}

// CheckAll checks every tracked product once, sequentially. One
// product's failure never aborts the rest; the first error is returned
// after the batch completes.
func (c *Checker) CheckAll(ctx context.Context) error {
	products, err := c.tracker.List(ctx)
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}

	var firstErr error
	for _, p := range products {
		if err := c.CheckProduct(ctx, p.ID); err != nil {
			logger.Warn("check failed for %q (%s): %v", p.Name, p.ID, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("checking %s: %w", p.ID, err)
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return firstErr
}

// CheckProduct checks a single product on demand.
func (c *Checker) CheckProduct(ctx context.Context, id string) error {
	if !c.beginCheck(id) {
		return domain.ErrCheckInProgress
	}
	defer c.endCheck(id)

	product, err := c.tracker.Get(ctx, id)
	if err != nil {
		return err
	}

	results := make([]domain.SourceResult, 0, len(product.Sources))
	for _, source := range product.Sources {
		quote := c.acquirer.Acquire(ctx, source, product.Query)

		var url string
		if site, lookupErr := c.registry.Lookup(source); lookupErr == nil {
			url = site.SearchURL(product.Query)
		}

		results = append(results, domain.SourceResult{
			Source:    source,
			Title:     quote.Title,
			Price:     quote.Price,
			Estimated: quote.Estimated,
			URL:       url,
			CheckedAt: time.Now(),
		})
	}

	delta, err := c.tracker.RecordCheck(ctx, id, results)
	if err != nil {
		return err
	}

	c.emit(product, results, delta)
	return nil
}

// Run executes scheduled checks until the context is cancelled. The
// interval is re-read from settings before each tick, so configuration
// changes apply without a restart.
func (c *Checker) Run(ctx context.Context) error {
	settings, err := c.settings.Get()
	if err != nil {
		return err
	}
	if !settings.AutoCheckEnabled {
		logger.Info("auto-check disabled, scheduler not starting")
		return nil
	}

	// Initial pass, then tick.
	if err := c.CheckAll(ctx); err != nil {
		logger.Warn("scheduled check: %v", err)
	}

	for {
		settings, err = c.settings.Get()
		if err != nil {
			return err
		}

		timer := time.NewTimer(settings.CheckInterval())
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := c.CheckAll(ctx); err != nil {
			logger.Warn("scheduled check: %v", err)
		}
	}
}

// emit raises the post-check update and any edge-triggered alerts.
func (c *Checker) emit(product *domain.TrackedProduct, results []domain.SourceResult, delta *domain.CheckDelta) {
	if c.notifier == nil {
		return
	}

	c.notifier.PriceUpdated(domain.PriceUpdate{
		ProductID: delta.ProductID,
		NewPrice:  delta.NewBest,
		OldPrice:  delta.PreviousBest,
		Source:    delta.BestSource,
	})

	settings, err := c.settings.Get()
	if err != nil || !settings.NotificationsEnabled {
		return
	}

	url := sourceURL(results, delta.BestSource)

	// Drop: fires on the transition below the threshold, measured
	// against the immediately preceding recorded price only.
	if delta.PreviousBest > 0 {
		dropPct := (delta.PreviousBest - delta.NewBest) / delta.PreviousBest * 100
		if dropPct >= settings.PriceDropThresholdPercent {
			c.notifier.Notify(domain.Notification{
				Kind:          domain.NotificationPriceDrop,
				ProductName:   product.Name,
				PreviousPrice: delta.PreviousBest,
				CurrentPrice:  delta.NewBest,
				URL:           url,
			})
		}
	}

	// Target: fires when the price crosses down to or below the
	// target, not on every check spent under it.
	if product.TargetPrice > 0 && delta.NewBest <= product.TargetPrice {
		crossed := delta.PreviousBest == 0 || delta.PreviousBest > product.TargetPrice
		if crossed {
			c.notifier.Notify(domain.Notification{
				Kind:          domain.NotificationTargetReached,
				ProductName:   product.Name,
				PreviousPrice: delta.PreviousBest,
				CurrentPrice:  delta.NewBest,
				URL:           url,
			})
		}
	}
}

// beginCheck transitions a product from idle to checking.
func (c *Checker) beginCheck(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[id] {
		return false
	}
	c.inFlight[id] = true
	return true
}

// endCheck returns a product to idle.
func (c *Checker) endCheck(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, id)
}

// sourceURL returns the canonical URL of the result for a source.
func sourceURL(results []domain.SourceResult, source domain.Source) string {
	for _, r := range results {
		if r.Source == source {
			return r.URL
		}
	}
	return ""
}
