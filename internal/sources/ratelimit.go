package sources

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

// Default rate limit: at most 5 admissions per source in any trailing
// 60-second window. Conservative enough to stay polite to retail sites.
const (
	DefaultMaxPerWindow = 5
	DefaultWindow       = 60 * time.Second
)

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	// MaxPerWindow is the maximum admissions per source per window.
	MaxPerWindow int

	// Window is the trailing window duration.
	Window time.Duration
}

// RateLimiter bounds outbound request frequency per source.
//
// It is dual-strategy: a sliding window of admission timestamps enforces
// the hard cap, and a token bucket paces requests so a burst is not
// followed by a long stall. Admit only ever delays, it never rejects;
// the sole error it can return is the context's.
type RateLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	windows map[domain.Source]*sourceWindow

	// Injectable for tests with a simulated clock.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// sourceWindow holds per-source admission state. Each source is
// independent: waiting on one never delays another.
type sourceWindow struct {
	mu     sync.Mutex
	stamps []time.Time
	bucket *rate.Limiter
}

// NewRateLimiter creates a rate limiter with default configuration.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(RateLimitConfig{
		MaxPerWindow: DefaultMaxPerWindow,
		Window:       DefaultWindow,
	})
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	if cfg.MaxPerWindow <= 0 {
		cfg.MaxPerWindow = DefaultMaxPerWindow
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	return &RateLimiter{
		max:     cfg.MaxPerWindow,
		window:  cfg.Window,
		windows: make(map[domain.Source]*sourceWindow),
		now:     time.Now,
		sleep:   sleepContext,
	}
}

// Admit blocks until a request for the source can be made without
// exceeding the window cap, then records the admission.
func (l *RateLimiter) Admit(ctx context.Context, source domain.Source) error {
	w := l.sourceWindow(source)

	// Proactive pacing first, then the hard cap.
	if err := w.bucket.Wait(ctx); err != nil {
		return err
	}

	for {
		w.mu.Lock()
		now := l.now()
		w.prune(now.Add(-l.window))

		if len(w.stamps) < l.max {
			w.stamps = append(w.stamps, now)
			w.mu.Unlock()
			return nil
		}

		// Full window: wait until the oldest admission ages out.
		wait := w.stamps[0].Add(l.window).Sub(now)
		w.mu.Unlock()

		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// Allow reports whether an admission for the source would proceed
// immediately, without recording one.
func (l *RateLimiter) Allow(source domain.Source) bool {
	w := l.sourceWindow(source)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prune(l.now().Add(-l.window))
	return len(w.stamps) < l.max
}

// sourceWindow returns the state for a source, creating it on first use.
func (l *RateLimiter) sourceWindow(source domain.Source) *sourceWindow {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[source]
	if !ok {
		w = &sourceWindow{
			// Burst of max so a fresh source admits a full window
			// immediately, refilling at the window's average rate.
			bucket: rate.NewLimiter(rate.Limit(float64(l.max)/l.window.Seconds()), l.max),
		}
		l.windows[source] = w
	}
	return w
}

// prune drops admission timestamps older than the cutoff.
// Caller holds w.mu.
func (w *sourceWindow) prune(cutoff time.Time) {
	idx := 0
	for idx < len(w.stamps) && !w.stamps[idx].After(cutoff) {
		idx++
	}
	if idx > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[idx:]...)
	}
}

// sleepContext sleeps for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
