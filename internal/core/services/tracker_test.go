package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/pricewatch-cli/internal/adapters/driven/storage/memory"
	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driving"
)

// newTestTracker wires a tracker over mocks. Every source fetch succeeds
// with the given per-source prices.
func newTestTracker(prices map[domain.Source]float64) (*Tracker, *memory.ProductStore, *stubSettings) {
	sites := make([]*mockSite, 0, len(prices))
	for source, price := range prices {
		sites = append(sites, newMockSite(source,
			fetchStep{quote: &domain.Quote{Title: string(source) + " item", Price: price}},
		))
	}
	registry := newMockRegistry()
	for _, s := range sites {
		registry.sites[s.Source()] = s
	}

	acquirer, _, _, _, _ := newTestAcquirer(registry)
	store := memory.NewProductStore()
	settings := newStubSettings()
	return NewTracker(store, acquirer, registry, settings), store, settings
}

func defaultPrices() map[domain.Source]float64 {
	return map[domain.Source]float64{
		domain.SourceAmazon:  899.99,
		domain.SourceEbay:    749.00,
		domain.SourceWalmart: 829.00,
	}
}

func TestTracker_AddProduct(t *testing.T) {
	tracker, store, _ := newTestTracker(defaultPrices())

	product, err := tracker.AddProduct(context.Background(), driving.AddProductRequest{
		Query:       "gaming laptop",
		Sources:     []domain.Source{domain.SourceAmazon, domain.SourceEbay, domain.SourceWalmart},
		TargetPrice: 700,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "gaming laptop", product.Name) // defaults to the query
	assert.Equal(t, 749.00, product.BestPrice)
	assert.Len(t, product.Results, 3)
	assert.Empty(t, product.History) // history starts with the first check
	assert.False(t, product.CreatedAt.IsZero())

	saved, err := store.Get(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.BestPrice, saved.BestPrice)
}

func TestTracker_AddProduct_Validation(t *testing.T) {
	tracker, _, _ := newTestTracker(defaultPrices())

	tests := []struct {
		name string
		req  driving.AddProductRequest
	}{
		{"empty query", driving.AddProductRequest{
			Sources: []domain.Source{domain.SourceAmazon},
		}},
		{"blank query", driving.AddProductRequest{
			Query:   "   ",
			Sources: []domain.Source{domain.SourceAmazon},
		}},
		{"no sources", driving.AddProductRequest{
			Query: "gaming laptop",
		}},
		{"unknown source", driving.AddProductRequest{
			Query:   "gaming laptop",
			Sources: []domain.Source{domain.Source("target")},
		}},
		{"negative target", driving.AddProductRequest{
			Query:       "gaming laptop",
			Sources:     []domain.Source{domain.SourceAmazon},
			TargetPrice: -5,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tracker.AddProduct(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTracker_AddProduct_DuplicateQuery(t *testing.T) {
	tracker, store, _ := newTestTracker(defaultPrices())
	ctx := context.Background()

	_, err := tracker.AddProduct(ctx, driving.AddProductRequest{
		Query:   "Gaming Laptop",
		Sources: []domain.Source{domain.SourceAmazon},
	})
	require.NoError(t, err)

	// Same query modulo case and whitespace.
	_, err = tracker.AddProduct(ctx, driving.AddProductRequest{
		Query:   "  gaming   laptop ",
		Sources: []domain.Source{domain.SourceEbay},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateQuery)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTracker_AddProduct_Capacity(t *testing.T) {
	tracker, _, settings := newTestTracker(defaultPrices())
	settings.settings.MaxFreeProducts = 2
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := tracker.AddProduct(ctx, driving.AddProductRequest{
			Query:   fmt.Sprintf("product %d", i),
			Sources: []domain.Source{domain.SourceAmazon},
		})
		require.NoError(t, err)
	}

	_, err := tracker.AddProduct(ctx, driving.AddProductRequest{
		Query:   "one too many",
		Sources: []domain.Source{domain.SourceAmazon},
	})
	assert.ErrorIs(t, err, domain.ErrCapacity)
}

func TestTracker_AddProduct_DedupesSources(t *testing.T) {
	tracker, _, _ := newTestTracker(defaultPrices())

	product, err := tracker.AddProduct(context.Background(), driving.AddProductRequest{
		Query:   "gaming laptop",
		Sources: []domain.Source{domain.SourceAmazon, domain.SourceAmazon, domain.SourceEbay},
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.Source{domain.SourceAmazon, domain.SourceEbay}, product.Sources)
}

func TestTracker_RemoveProduct(t *testing.T) {
	tracker, _, _ := newTestTracker(defaultPrices())
	ctx := context.Background()

	product, err := tracker.AddProduct(ctx, driving.AddProductRequest{
		Query:   "gaming laptop",
		Sources: []domain.Source{domain.SourceAmazon},
	})
	require.NoError(t, err)

	require.NoError(t, tracker.RemoveProduct(ctx, product.ID))

	_, err = tracker.Get(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Removing again reports not found.
	err = tracker.RemoveProduct(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTracker_RecordCheck(t *testing.T) {
	tracker, _, _ := newTestTracker(defaultPrices())
	ctx := context.Background()

	product, err := tracker.AddProduct(ctx, driving.AddProductRequest{
		Query:   "gaming laptop",
		Sources: []domain.Source{domain.SourceAmazon, domain.SourceEbay},
	})
	require.NoError(t, err)

	delta, err := tracker.RecordCheck(ctx, product.ID, []domain.SourceResult{
		{Source: domain.SourceAmazon, Price: 850.00, CheckedAt: time.Now()},
		{Source: domain.SourceEbay, Price: 700.00, CheckedAt: time.Now()},
	})

	require.NoError(t, err)
	assert.Equal(t, product.BestPrice, delta.PreviousBest)
	assert.Equal(t, 700.00, delta.NewBest)
	assert.Equal(t, domain.SourceEbay, delta.BestSource)

	updated, err := tracker.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 700.00, updated.BestPrice)
	require.Len(t, updated.History, 1)
	assert.Equal(t, 700.00, updated.History[0].Price)
	assert.Equal(t, domain.SourceEbay, updated.History[0].Source)
}

func TestTracker_RecordCheck_Validation(t *testing.T) {
	tracker, _, _ := newTestTracker(defaultPrices())
	ctx := context.Background()

	product, err := tracker.AddProduct(ctx, driving.AddProductRequest{
		Query:   "gaming laptop",
		Sources: []domain.Source{domain.SourceAmazon},
	})
	require.NoError(t, err)

	// No results at all.
	_, err = tracker.RecordCheck(ctx, product.ID, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Results with no positive price.
	_, err = tracker.RecordCheck(ctx, product.ID, []domain.SourceResult{
		{Source: domain.SourceAmazon, Price: 0},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Unknown product.
	_, err = tracker.RecordCheck(ctx, "missing", []domain.SourceResult{
		{Source: domain.SourceAmazon, Price: 100},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTracker_RecordCheck_HistoryRetention(t *testing.T) {
	tracker, _, _ := newTestTracker(defaultPrices())
	ctx := context.Background()

	product, err := tracker.AddProduct(ctx, driving.AddProductRequest{
		Query:   "gaming laptop",
		Sources: []domain.Source{domain.SourceAmazon},
	})
	require.NoError(t, err)

	for i := 0; i < domain.MaxHistoryEntries+10; i++ {
		_, err := tracker.RecordCheck(ctx, product.ID, []domain.SourceResult{
			{Source: domain.SourceAmazon, Price: float64(1000 + i)},
		})
		require.NoError(t, err)
	}

	updated, err := tracker.Get(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, updated.History, domain.MaxHistoryEntries)

	// The oldest ten were evicted, the newest survives.
	assert.Equal(t, float64(1010), updated.History[0].Price)
	assert.Equal(t, float64(1000+domain.MaxHistoryEntries+9), updated.History[len(updated.History)-1].Price)
}

func TestTracker_ClearAll(t *testing.T) {
	tracker, store, _ := newTestTracker(defaultPrices())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := tracker.AddProduct(ctx, driving.AddProductRequest{
			Query:   fmt.Sprintf("product %d", i),
			Sources: []domain.Source{domain.SourceAmazon},
		})
		require.NoError(t, err)
	}

	require.NoError(t, tracker.ClearAll(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTracker_ExportImport(t *testing.T) {
	tracker, _, _ := newTestTracker(defaultPrices())
	ctx := context.Background()

	_, err := tracker.AddProduct(ctx, driving.AddProductRequest{
		Query:   "gaming laptop",
		Sources: []domain.Source{domain.SourceAmazon, domain.SourceEbay},
	})
	require.NoError(t, err)

	doc, err := tracker.Export(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Products, 1)
	assert.False(t, doc.ExportedAt.IsZero())

	// Import into a fresh tracker restores the collection and settings.
	fresh, freshStore, freshSettings := newTestTracker(defaultPrices())
	doc.Settings.CheckIntervalMinutes = 15

	require.NoError(t, fresh.Import(ctx, doc))

	count, err := freshStore.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.NotNil(t, freshSettings.updated)
	assert.Equal(t, 15, freshSettings.updated.CheckIntervalMinutes)
}

func TestTracker_Import_RejectsBadDocuments(t *testing.T) {
	tracker, _, _ := newTestTracker(defaultPrices())
	ctx := context.Background()

	err := tracker.Import(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Invalid settings.
	err = tracker.Import(ctx, &domain.ExportDocument{
		Settings: domain.Settings{CheckIntervalMinutes: 0},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Product missing required fields.
	err = tracker.Import(ctx, &domain.ExportDocument{
		Settings: domain.DefaultSettings(),
		Products: []domain.TrackedProduct{{Name: "no id"}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
