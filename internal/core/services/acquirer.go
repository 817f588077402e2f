package services

import (
	"context"
	"time"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driven"
	"github.com/meridian-labs/pricewatch-cli/internal/logger"
)

// Retry policy for one acquisition.
const (
	// MaxFetchAttempts is how many times the pipeline is tried before
	// falling back.
	MaxFetchAttempts = 3

	// initialBackoff is the delay before the second attempt; it
	// doubles per attempt.
	initialBackoff = 1 * time.Second
)

// Acquirer composes the rate limiter, cache, fetch pipeline and fallback
// generator into a single total "get current price" operation.
type Acquirer struct {
	registry driven.SourceRegistry
	limiter  driven.RateLimiter
	cache    driven.QuoteCache
	fallback driven.FallbackPricer

	// Injectable backoff sleep for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewAcquirer creates an acquisition orchestrator.
func NewAcquirer(
	registry driven.SourceRegistry,
	limiter driven.RateLimiter,
	cache driven.QuoteCache,
	fallback driven.FallbackPricer,
) *Acquirer {
	return &Acquirer{
		registry: registry,
		limiter:  limiter,
		cache:    cache,
		fallback: fallback,
		sleep:    sleepContext,
	}
}

// Acquire returns the current quote for (source, query). It always
// succeeds: cache hit, live extraction under retry, or deterministic
// fallback, in that order.
//
// The cache is checked before rate limiting so hits never spend an
// admission. Fallback quotes are not cached; they are cheap to recompute
// and must never shadow a later genuine extraction.
func (a *Acquirer) Acquire(ctx context.Context, source domain.Source, query string) domain.Quote {
	if quote, ok := a.cache.Lookup(source, query); ok {
		logger.Debug("acquire %s %q: cache hit at %.2f", source, query, quote.Price)
		return *quote
	}

	site, err := a.registry.Lookup(source)
	if err != nil {
		logger.Warn("acquire %s %q: unknown source: %v", source, query, err)
		return a.fallback.Fallback(source, query)
	}

	if err := a.limiter.Admit(ctx, source); err != nil {
		logger.Warn("acquire %s %q: admission aborted: %v", source, query, err)
		return a.fallback.Fallback(source, query)
	}

	backoff := initialBackoff
	for attempt := 1; attempt <= MaxFetchAttempts; attempt++ {
		quote, err := site.Fetch(ctx, query)
		switch {
		case err != nil:
			logger.Debug("acquire %s %q: attempt %d transport failure: %v", source, query, attempt, err)
		case quote == nil:
			logger.Debug("acquire %s %q: attempt %d extraction miss", source, query, attempt)
		case quote.Price <= 0:
			// A zero or negative price is as useless as a miss.
			logger.Debug("acquire %s %q: attempt %d implausible price %.2f", source, query, attempt, quote.Price)
		default:
			a.cache.Store(source, query, *quote)
			return *quote
		}

		if attempt < MaxFetchAttempts {
			if err := a.sleep(ctx, backoff); err != nil {
				break
			}
			backoff *= 2
		}
	}

	logger.Debug("acquire %s %q: falling back to estimate", source, query)
	return a.fallback.Fallback(source, query)
}

// sleepContext sleeps for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
