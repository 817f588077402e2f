package driven

import (
	"context"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

// RateLimiter bounds outbound request frequency per source.
type RateLimiter interface {
	// Admit blocks until a request for the source is within the rate
	// limit, then records the admission. It only delays, never
	// rejects; the sole error it returns is the context's.
	Admit(ctx context.Context, source domain.Source) error
}

// QuoteCache memoises acquisition results for a short TTL.
// It is never authoritative: callers must function correctly with an
// always-missing cache.
type QuoteCache interface {
	// Lookup returns an unexpired cached quote for (source, query).
	Lookup(source domain.Source, query string) (*domain.Quote, bool)

	// Store records a quote, overwriting unconditionally.
	Store(source domain.Source, query string, quote domain.Quote)
}

// FallbackPricer produces a deterministic stand-in quote when extraction
// fails. It is total: it never fails and never returns a zero price.
type FallbackPricer interface {
	// Fallback returns the synthetic quote for (source, query).
	Fallback(source domain.Source, query string) domain.Quote
}
