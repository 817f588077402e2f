package sources

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

// minFallbackPrice is the floor a fallback price is clamped to.
const minFallbackPrice = 9.99

// priceCategory models a coarse product class with a base price and a
// variation range for fallback pricing.
type priceCategory struct {
	keywords []string
	base     float64
	spread   float64
}

// Category order matters: the first keyword match wins, so the more
// specific classes come before the generic catch-all.
var priceCategories = []priceCategory{
	{
		keywords: []string{"laptop", "macbook", "notebook", "thinkpad", "chromebook"},
		base:     900,
		spread:   400,
	},
	{
		keywords: []string{"phone", "iphone", "galaxy", "pixel", "smartphone"},
		base:     450,
		spread:   200,
	},
	{
		keywords: []string{"headphone", "headphones", "earbud", "earbuds", "airpods", "speaker", "soundbar", "headset"},
		base:     120,
		spread:   80,
	},
}

// genericCategory is the catch-all for unclassified queries.
var genericCategory = priceCategory{base: 60, spread: 40}

// sourceMultipliers model each source as modestly cheaper or pricier
// than the Amazon baseline.
var sourceMultipliers = map[domain.Source]float64{
	domain.SourceAmazon:  1.0,
	domain.SourceEbay:    0.92,
	domain.SourceWalmart: 0.97,
}

// FallbackPricer produces a deterministic stand-in quote when extraction
// yields nothing usable. It never fails: it is the terminal step that
// guarantees every acquisition attempt produces a value.
//
// Determinism matters: the same (query, source) pair always yields the
// same price, so a product that can never be scraped does not show
// spurious price drops between checks.
type FallbackPricer struct{}

// NewFallbackPricer creates a fallback pricer.
func NewFallbackPricer() *FallbackPricer {
	return &FallbackPricer{}
}

// Fallback returns the synthetic quote for (source, query).
func (f *FallbackPricer) Fallback(source domain.Source, query string) domain.Quote {
	normalized := domain.NormalizeQuery(query)
	cat := classifyQuery(normalized)

	// FNV-1a keeps the variation stable across processes.
	h := fnv.New64a()
	h.Write([]byte(normalized))
	variation := cat.spread * float64(h.Sum64()%1000) / 1000

	multiplier, ok := sourceMultipliers[source]
	if !ok {
		multiplier = 1.0
	}

	price := (cat.base + variation) * multiplier
	price = math.Round(price*100) / 100
	if price < minFallbackPrice {
		price = minFallbackPrice
	}

	return domain.Quote{
		Title:     fmt.Sprintf("%s - %s Result", query, source.DisplayName()),
		Price:     price,
		Estimated: true,
	}
}

// classifyQuery picks the price category for a normalised query.
func classifyQuery(normalized string) priceCategory {
	for _, cat := range priceCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(normalized, kw) {
				return cat
			}
		}
	}
	return genericCategory
}
