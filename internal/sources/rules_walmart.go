package sources

import (
	"net/url"
	"regexp"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

var walmartDollarRegex = regexp.MustCompile(`\$[\d,]+\.?\d*`)

// walmartSearchURL builds the Walmart search-results URL for a query.
func walmartSearchURL(query string) string {
	return "https://www.walmart.com/search?q=" + url.QueryEscape(query)
}

// walmartRules locate the first product tile's price, then any price
// block on the page, then a bare dollar amount.
func walmartRules() []Rule {
	return []Rule{
		selectorRule(
			"walmart-tile-price",
			"div[data-item-id]",
			`div[data-automation-id="product-price"]`,
			`span[data-automation-id="product-title"]`,
		),
		selectorRule(
			"walmart-any-price",
			"body",
			`div[data-automation-id="product-price"]`,
			"",
		),
		regexRule("walmart-dollar-regex", walmartDollarRegex),
	}
}

// NewWalmartSite creates the Walmart price source.
func NewWalmartSite(client *Client) *Site {
	return &Site{
		source:    domain.SourceWalmart,
		searchURL: walmartSearchURL,
		rules:     walmartRules(),
		client:    client,
	}
}
