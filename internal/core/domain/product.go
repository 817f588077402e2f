package domain

import (
	"strings"
	"time"
)

// MaxHistoryEntries is the retention cap on a product's price history.
// Older entries are evicted first once the cap is reached.
const MaxHistoryEntries = 100

// Quote is a title/price pair produced by a price acquisition.
type Quote struct {
	// Title is the extracted (or synthesised) product title.
	Title string `json:"title"`

	// Price is the acquired price. Always positive.
	Price float64 `json:"price"`

	// Estimated is true when the quote came from the deterministic
	// fallback generator rather than a live extraction.
	Estimated bool `json:"estimated"`
}

// SourceResult is the latest acquisition outcome for one (product, source)
// pair. It is owned by its TrackedProduct and replaced wholesale on each
// check, never merged.
type SourceResult struct {
	// Source identifies the retail source that produced this result.
	Source Source `json:"source"`

	// Title is the extracted or fallback title.
	Title string `json:"title"`

	// Price is the extracted or fallback price.
	Price float64 `json:"price"`

	// Estimated is true when Price came from the fallback generator.
	Estimated bool `json:"estimated"`

	// URL is the canonical search URL used for this source.
	URL string `json:"url"`

	// CheckedAt is when this result was acquired.
	CheckedAt time.Time `json:"checked_at"`
}

// PriceHistoryEntry is one immutable point in a product's price series.
// Entries are created only after a successful acquisition and removed only
// by retention eviction or product deletion.
type PriceHistoryEntry struct {
	// Price is the recorded best price. Always positive.
	Price float64 `json:"price"`

	// Timestamp is when the price was recorded.
	Timestamp time.Time `json:"timestamp"`

	// Source identifies which source produced the best price, if known.
	Source Source `json:"source,omitempty"`
}

// TrackedProduct is a product whose price is monitored across sources.
type TrackedProduct struct {
	// ID is the unique identifier for the product.
	ID string `json:"id"`

	// Name is the human-readable display name.
	Name string `json:"name"`

	// Query is the free-text search string used on each source.
	Query string `json:"query"`

	// Sources is the set of enabled sources. Never empty.
	Sources []Source `json:"sources"`

	// TargetPrice is the price at or below which a target alert fires.
	// Zero means no target is set.
	TargetPrice float64 `json:"target_price,omitempty"`

	// BestPrice is the lowest price among the current source results.
	BestPrice float64 `json:"best_price"`

	// Results holds the latest per-source acquisition outcomes.
	Results []SourceResult `json:"results"`

	// History is the append-only price series, oldest first,
	// capped at MaxHistoryEntries.
	History []PriceHistoryEntry `json:"history"`

	// CreatedAt is when the product was added.
	CreatedAt time.Time `json:"created_at"`

	// LastCheckedAt is when the product was last checked.
	LastCheckedAt time.Time `json:"last_checked_at"`
}

// NormalizeQuery canonicalises a query for duplicate detection:
// lowercased, with runs of whitespace collapsed to single spaces.
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// HasSource returns true if the given source is enabled for this product.
func (p *TrackedProduct) HasSource(s Source) bool {
	for _, enabled := range p.Sources {
		if enabled == s {
			return true
		}
	}
	return false
}

// AppendHistory appends one entry and trims the series to the retention
// cap, dropping the oldest entries first.
func (p *TrackedProduct) AppendHistory(entry PriceHistoryEntry) {
	p.History = append(p.History, entry)
	if len(p.History) > MaxHistoryEntries {
		p.History = p.History[len(p.History)-MaxHistoryEntries:]
	}
}

// PreviousPrice returns the price of the entry immediately preceding the
// most recent one, or 0 if fewer than two entries exist.
func (p *TrackedProduct) PreviousPrice() float64 {
	if len(p.History) < 2 {
		return 0
	}
	return p.History[len(p.History)-2].Price
}

// CheckDelta summarises one recorded check for notification evaluation.
type CheckDelta struct {
	// ProductID identifies the product that was checked.
	ProductID string

	// PreviousBest is the best price before this check. Zero on the
	// first ever check.
	PreviousBest float64

	// NewBest is the best price recorded by this check.
	NewBest float64

	// BestSource identifies which source produced the new best price.
	BestSource Source
}
