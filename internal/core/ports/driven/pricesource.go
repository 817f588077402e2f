package driven

import (
	"context"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

// PriceSource fetches and extracts a quote from one retail site.
type PriceSource interface {
	// Source identifies the retail site this source queries.
	Source() domain.Source

	// SearchURL returns the canonical search URL for a query.
	SearchURL(query string) string

	// Fetch issues one search request and applies the source's
	// extraction rules. A nil quote with a nil error is an extraction
	// miss: the page was reachable but no rule produced a valid price.
	// Errors cover transport failures and timeouts. Both outcomes are
	// expected and frequent given third-party markup volatility.
	Fetch(ctx context.Context, query string) (*domain.Quote, error)
}

// SourceRegistry resolves PriceSource implementations by identifier.
type SourceRegistry interface {
	// Lookup returns the PriceSource for the given source.
	// Returns domain.ErrNotFound for unknown sources.
	Lookup(source domain.Source) (PriceSource, error)
}
