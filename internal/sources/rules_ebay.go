package sources

import (
	"net/url"
	"regexp"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

var ebayDollarRegex = regexp.MustCompile(`\$[\d,]+\.?\d*`)

// ebaySearchURL builds the eBay search-results URL for a query.
func ebaySearchURL(query string) string {
	return "https://www.ebay.com/sch/i.html?_nkw=" + url.QueryEscape(query)
}

// ebayRules locate the first listing's price, then any listing price on
// the page, then a bare dollar amount.
func ebayRules() []Rule {
	return []Rule{
		selectorRule(
			"ebay-item-price",
			"li.s-item",
			"span.s-item__price",
			"div.s-item__title",
		),
		selectorRule(
			"ebay-any-price",
			"body",
			"span.s-item__price",
			"",
		),
		regexRule("ebay-dollar-regex", ebayDollarRegex),
	}
}

// NewEbaySite creates the eBay price source.
func NewEbaySite(client *Client) *Site {
	return &Site{
		source:    domain.SourceEbay,
		searchURL: ebaySearchURL,
		rules:     ebayRules(),
		client:    client,
	}
}
