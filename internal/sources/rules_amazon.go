package sources

import (
	"net/url"
	"regexp"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

var amazonDollarRegex = regexp.MustCompile(`\$[\d,]+\.?\d*`)

// amazonSearchURL builds the Amazon search-results URL for a query.
func amazonSearchURL(query string) string {
	return "https://www.amazon.com/s?k=" + url.QueryEscape(query)
}

// amazonRules are tried most specific first: a price scoped to the first
// organic search result, then any offscreen price on the page, then a
// bare dollar amount anywhere in the markup.
func amazonRules() []Rule {
	return []Rule{
		splitPriceRule(
			"amazon-result-price-parts",
			`div[data-component-type="s-search-result"]`,
			"span.a-price-whole",
			"span.a-price-fraction",
			"h2 span",
		),
		selectorRule(
			"amazon-result-offscreen",
			`div[data-component-type="s-search-result"]`,
			"span.a-price span.a-offscreen",
			"h2 span",
		),
		selectorRule(
			"amazon-any-offscreen",
			"body",
			"span.a-price span.a-offscreen",
			"",
		),
		regexRule("amazon-dollar-regex", amazonDollarRegex),
	}
}

// NewAmazonSite creates the Amazon price source.
func NewAmazonSite(client *Client) *Site {
	return &Site{
		source:    domain.SourceAmazon,
		searchURL: amazonSearchURL,
		rules:     amazonRules(),
		client:    client,
	}
}
