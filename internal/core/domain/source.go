package domain

// Source identifies a third-party retail site that can be searched for prices.
type Source string

// Supported retail sources.
const (
	// SourceAmazon is the Amazon search results page.
	SourceAmazon Source = "amazon"

	// SourceEbay is the eBay search results page.
	SourceEbay Source = "ebay"

	// SourceWalmart is the Walmart search results page.
	SourceWalmart Source = "walmart"
)

// AllSources lists every supported source in display order.
var AllSources = []Source{SourceAmazon, SourceEbay, SourceWalmart}

// IsValid returns true if the source is recognised.
func (s Source) IsValid() bool {
	switch s {
	case SourceAmazon, SourceEbay, SourceWalmart:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Source) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the source.
func (s Source) DisplayName() string {
	switch s {
	case SourceAmazon:
		return "Amazon"
	case SourceEbay:
		return "eBay"
	case SourceWalmart:
		return "Walmart"
	default:
		return "Unknown"
	}
}
