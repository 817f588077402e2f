package driven

import (
	"context"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

// ProductStore persists tracked products.
//
// Implementations must allow concurrent reads but serialise mutations to
// the same product id so overlapping checks never lose history updates.
type ProductStore interface {
	// Save stores or updates a product.
	Save(ctx context.Context, product domain.TrackedProduct) error

	// Get retrieves a product by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.TrackedProduct, error)

	// Delete removes a product and its history.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every tracked product.
	DeleteAll(ctx context.Context) error

	// List returns all tracked products ordered by creation time.
	List(ctx context.Context) ([]domain.TrackedProduct, error)

	// Count returns the number of tracked products.
	Count(ctx context.Context) (int, error)
}
