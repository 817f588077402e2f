package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driven"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driving"
	"github.com/meridian-labs/pricewatch-cli/internal/logger"
)

// Ensure Tracker implements the interface.
var _ driving.TrackerService = (*Tracker)(nil)

// Tracker manages the tracked-product collection.
type Tracker struct {
	store    driven.ProductStore
	acquirer *Acquirer
	registry driven.SourceRegistry
	settings driving.SettingsService

	// locks serialises read-modify-write cycles per product id so
	// overlapping checks never lose history entries.
	mu    sync.Mutex
	locks map[string]*sync.Mutex

	now func() time.Time
}

// NewTracker creates a tracker service.
func NewTracker(
	store driven.ProductStore,
	acquirer *Acquirer,
	registry driven.SourceRegistry,
	settings driving.SettingsService,
) *Tracker {
	return &Tracker{
		store:    store,
		acquirer: acquirer,
		registry: registry,
		settings: settings,
		locks:    make(map[string]*sync.Mutex),
		now:      time.Now,
	}
}

// AddProduct validates the request, acquires a first quote on every
// enabled source and commits the product.
func (t *Tracker) AddProduct(ctx context.Context, req driving.AddProductRequest) (*domain.TrackedProduct, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", domain.ErrValidation)
	}
	if len(req.Sources) == 0 {
		return nil, fmt.Errorf("%w: at least one source must be selected", domain.ErrValidation)
	}
	for _, s := range req.Sources {
		if !s.IsValid() {
			return nil, fmt.Errorf("%w: unknown source %q", domain.ErrValidation, s)
		}
	}
	if req.TargetPrice < 0 {
		return nil, fmt.Errorf("%w: target price must be positive", domain.ErrValidation)
	}

	if err := t.checkDuplicate(ctx, query); err != nil {
		return nil, err
	}
	if err := t.checkCapacity(ctx); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = query
	}

	now := t.now()
	product := domain.TrackedProduct{
		ID:          uuid.NewString(),
		Name:        name,
		Query:       query,
		Sources:     dedupeSources(req.Sources),
		TargetPrice: req.TargetPrice,
		CreatedAt:   now,
	}

	// First acquisition on every enabled source before committing.
	// Acquire is total, so this can only reject via the validations
	// above, never by coming back empty.
	results := t.acquireAll(ctx, &product)
	product.Results = results
	product.BestPrice, _ = bestOf(results)
	product.LastCheckedAt = t.now()

	if err := t.store.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("saving product: %w", err)
	}

	logger.Info("tracking %q (%s) at best %.2f", product.Name, product.ID, product.BestPrice)
	return &product, nil
}

// Get retrieves a product by ID.
func (t *Tracker) Get(ctx context.Context, id string) (*domain.TrackedProduct, error) {
	return t.store.Get(ctx, id)
}

// List returns all tracked products.
func (t *Tracker) List(ctx context.Context) ([]domain.TrackedProduct, error) {
	return t.store.List(ctx)
}

// RemoveProduct deletes a product and its history.
func (t *Tracker) RemoveProduct(ctx context.Context, id string) error {
	return t.store.Delete(ctx, id)
}

// ClearAll deletes every tracked product.
func (t *Tracker) ClearAll(ctx context.Context) error {
	return t.store.DeleteAll(ctx)
}

// RecordCheck replaces the product's source results, appends one history
// entry at the lowest acquired price and returns the before/after delta.
func (t *Tracker) RecordCheck(ctx context.Context, id string, results []domain.SourceResult) (*domain.CheckDelta, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: a check must carry at least one source result", domain.ErrValidation)
	}

	lock := t.productLock(id)
	lock.Lock()
	defer lock.Unlock()

	product, err := t.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	best, bestSource := bestOf(results)
	if best <= 0 {
		return nil, fmt.Errorf("%w: check produced no positive price", domain.ErrValidation)
	}

	delta := &domain.CheckDelta{
		ProductID:    id,
		PreviousBest: product.BestPrice,
		NewBest:      best,
		BestSource:   bestSource,
	}

	now := t.now()
	product.Results = results
	product.BestPrice = best
	product.LastCheckedAt = now
	product.AppendHistory(domain.PriceHistoryEntry{
		Price:     best,
		Timestamp: now,
		Source:    bestSource,
	})

	if err := t.store.Save(ctx, *product); err != nil {
		return nil, fmt.Errorf("recording check: %w", err)
	}
	return delta, nil
}

// Export produces the full collection plus settings as one document.
func (t *Tracker) Export(ctx context.Context) (*domain.ExportDocument, error) {
	products, err := t.store.List(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := t.settings.Get()
	if err != nil {
		return nil, err
	}

	return &domain.ExportDocument{
		ExportedAt: t.now(),
		Settings:   *settings,
		Products:   products,
	}, nil
}

// Import replaces the collection and settings with the document's
// contents.
func (t *Tracker) Import(ctx context.Context, doc *domain.ExportDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", domain.ErrValidation)
	}
	if err := doc.Settings.Validate(); err != nil {
		return err
	}
	for i := range doc.Products {
		p := &doc.Products[i]
		if p.ID == "" || strings.TrimSpace(p.Query) == "" || len(p.Sources) == 0 {
			return fmt.Errorf("%w: product %d is missing id, query or sources", domain.ErrValidation, i)
		}
	}

	if err := t.store.DeleteAll(ctx); err != nil {
		return err
	}
	for _, p := range doc.Products {
		if err := t.store.Save(ctx, p); err != nil {
			return fmt.Errorf("importing product %s: %w", p.ID, err)
		}
	}
	return t.settings.Update(doc.Settings)
}

// acquireAll fetches a quote for every enabled source of a product.
func (t *Tracker) acquireAll(ctx context.Context, product *domain.TrackedProduct) []domain.SourceResult {
	results := make([]domain.SourceResult, 0, len(product.Sources))
	for _, source := range product.Sources {
		quote := t.acquirer.Acquire(ctx, source, product.Query)

		var url string
		if site, err := t.registry.Lookup(source); err == nil {
			url = site.SearchURL(product.Query)
		}

		results = append(results, domain.SourceResult{
			Source:    source,
			Title:     quote.Title,
			Price:     quote.Price,
			Estimated: quote.Estimated,
			URL:       url,
			CheckedAt: t.now(),
		})
	}
	return results
}

// checkDuplicate rejects a query already tracked verbatim after
// normalisation.
func (t *Tracker) checkDuplicate(ctx context.Context, query string) error {
	products, err := t.store.List(ctx)
	if err != nil {
		return err
	}

	normalized := domain.NormalizeQuery(query)
	for _, p := range products {
		if domain.NormalizeQuery(p.Query) == normalized {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateQuery, query)
		}
	}
	return nil
}

// checkCapacity rejects additions at or above the configured ceiling.
func (t *Tracker) checkCapacity(ctx context.Context) error {
	settings, err := t.settings.Get()
	if err != nil {
		return err
	}

	count, err := t.store.Count(ctx)
	if err != nil {
		return err
	}
	if count >= settings.MaxFreeProducts {
		return fmt.Errorf("%w: %d of %d products tracked", domain.ErrCapacity, count, settings.MaxFreeProducts)
	}
	return nil
}

// productLock returns the mutex guarding one product's read-modify-write
// cycle, creating it on first use.
func (t *Tracker) productLock(id string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	lock, ok := t.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[id] = lock
	}
	return lock
}

// bestOf returns the lowest positive price among the results and the
// source that produced it.
func bestOf(results []domain.SourceResult) (float64, domain.Source) {
	var best float64
	var bestSource domain.Source
	for _, r := range results {
		if r.Price <= 0 {
			continue
		}
		if best == 0 || r.Price < best {
			best = r.Price
			bestSource = r.Source
		}
	}
	return best, bestSource
}

// dedupeSources removes duplicate sources preserving order.
func dedupeSources(sources []domain.Source) []domain.Source {
	seen := make(map[domain.Source]bool, len(sources))
	out := make([]domain.Source, 0, len(sources))
	for _, s := range sources {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
