package sources

import (
	"sync"
	"time"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

// DefaultCacheTTL is how long a cached quote stays valid.
const DefaultCacheTTL = 5 * time.Minute

// cacheKey identifies one (source, query) acquisition.
type cacheKey struct {
	source domain.Source
	query  string
}

// cacheEntry holds a quote with its acquisition time.
type cacheEntry struct {
	quote      domain.Quote
	acquiredAt time.Time
}

// QuoteCache memoises extraction results for a short TTL. It is purely a
// performance and politeness optimisation: callers must behave correctly
// with an always-missing cache, and failures are never cached.
//
// Capacity is unbounded for the process lifetime, which is acceptable
// because keys are bounded by the number of actively tracked queries.
type QuoteCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[cacheKey]cacheEntry

	now func() time.Time
}

// NewQuoteCache creates a cache with the default TTL.
func NewQuoteCache() *QuoteCache {
	return NewQuoteCacheWithTTL(DefaultCacheTTL)
}

// NewQuoteCacheWithTTL creates a cache with a custom TTL.
func NewQuoteCacheWithTTL(ttl time.Duration) *QuoteCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &QuoteCache{
		ttl:     ttl,
		entries: make(map[cacheKey]cacheEntry),
		now:     time.Now,
	}
}

// Lookup returns the cached quote for (source, query) if one exists and
// is younger than the TTL. Queries are normalised so formatting
// differences share an entry.
func (c *QuoteCache) Lookup(source domain.Source, query string) (*domain.Quote, bool) {
	key := cacheKey{source: source, query: domain.NormalizeQuery(query)}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.acquiredAt) >= c.ttl {
		return nil, false
	}

	quote := entry.quote
	return &quote, true
}

// Store records a quote for (source, query), overwriting unconditionally.
func (c *QuoteCache) Store(source domain.Source, query string, quote domain.Quote) {
	key := cacheKey{source: source, query: domain.NormalizeQuery(query)}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{quote: quote, acquiredAt: c.now()}
}
