package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driven"
)

// Ensure ProductStore implements the interface.
var _ driven.ProductStore = (*ProductStore)(nil)

// ProductStore is an in-memory implementation of driven.ProductStore.
// Products are deep-copied on the way in and out so callers never share
// history or result slices with the store.
type ProductStore struct {
	mu       sync.RWMutex
	products map[string]domain.TrackedProduct
}

// NewProductStore creates a new in-memory product store.
func NewProductStore() *ProductStore {
	return &ProductStore{
		products: make(map[string]domain.TrackedProduct),
	}
}

// Save stores or updates a product.
func (s *ProductStore) Save(_ context.Context, product domain.TrackedProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = copyProduct(product)
	return nil
}

// Get retrieves a product by ID.
func (s *ProductStore) Get(_ context.Context, id string) (*domain.TrackedProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyProduct(product)
	return &out, nil
}

// Delete removes a product.
func (s *ProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// DeleteAll removes every tracked product.
func (s *ProductStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make(map[string]domain.TrackedProduct)
	return nil
}

// List returns all tracked products ordered by creation time.
func (s *ProductStore) List(_ context.Context) ([]domain.TrackedProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.TrackedProduct, 0, len(s.products))
	for _, product := range s.products {
		result = append(result, copyProduct(product))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Count returns the number of tracked products.
func (s *ProductStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), nil
}

// copyProduct clones a product including its slices.
func copyProduct(p domain.TrackedProduct) domain.TrackedProduct {
	out := p
	out.Sources = append([]domain.Source(nil), p.Sources...)
	out.Results = append([]domain.SourceResult(nil), p.Results...)
	out.History = append([]domain.PriceHistoryEntry(nil), p.History...)
	return out
}
