package driving

import (
	"context"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

// AddProductRequest describes a product to start tracking.
type AddProductRequest struct {
	// Query is the free-text search string. Required.
	Query string

	// Name is the display name. Defaults to Query if empty.
	Name string

	// Sources is the set of sources to track. Required, non-empty.
	Sources []domain.Source

	// TargetPrice is an optional target. Must be positive if set.
	TargetPrice float64
}

// TrackerService manages the tracked-product collection.
type TrackerService interface {
	// AddProduct validates the request, acquires a first quote on every
	// enabled source and commits the product. Returns
	// domain.ErrValidation, domain.ErrDuplicateQuery or
	// domain.ErrCapacity on rejection; no state is mutated then.
	AddProduct(ctx context.Context, req AddProductRequest) (*domain.TrackedProduct, error)

	// Get retrieves a product by ID.
	Get(ctx context.Context, id string) (*domain.TrackedProduct, error)

	// List returns all tracked products.
	List(ctx context.Context) ([]domain.TrackedProduct, error)

	// RemoveProduct deletes a product and its history.
	RemoveProduct(ctx context.Context, id string) error

	// ClearAll deletes every tracked product.
	ClearAll(ctx context.Context) error

	// RecordCheck replaces the product's source results, appends one
	// history entry at the lowest acquired price and returns the
	// before/after delta for notification evaluation.
	RecordCheck(ctx context.Context, id string, results []domain.SourceResult) (*domain.CheckDelta, error)

	// Export produces the full collection plus settings as one document.
	Export(ctx context.Context) (*domain.ExportDocument, error)

	// Import replaces the collection and settings with the document's
	// contents.
	Import(ctx context.Context, doc *domain.ExportDocument) error
}
