package sources

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

// Absolute plausibility band for an extracted price.
const (
	MinPlausiblePrice = 10.0
	MaxPlausiblePrice = 5000.0
)

// Query-sensitive minimums. A search for a laptop that "finds" a $25
// price almost certainly matched an accessory, not the product.
const (
	laptopMinPrice = 200.0
	phoneMinPrice  = 100.0
)

// Page is one fetched search-result page, available both parsed and raw.
// The raw text serves the coarsest regex rules.
type Page struct {
	// Doc is the parsed document. Nil when parsing failed; selector
	// rules skip a nil Doc.
	Doc *goquery.Document

	// Raw is the decompressed response body.
	Raw string
}

// Candidate is a price (and optional title) located by a rule.
type Candidate struct {
	// Title is the extracted title. May be empty.
	Title string

	// Price is the extracted price.
	Price float64
}

// Rule locates a price within a page. Rules are pure: they inspect the
// page and either produce a candidate or report a miss.
type Rule struct {
	// Name identifies the rule in verbose logs.
	Name string

	// Apply inspects the page for a candidate.
	Apply func(p *Page) (Candidate, bool)
}

var priceTextRegex = regexp.MustCompile(`[\d,]+\.?\d*`)

// ParsePrice extracts the first numeric price from a text fragment,
// tolerating currency symbols and thousands separators.
func ParsePrice(text string) (float64, bool) {
	match := priceTextRegex.FindString(text)
	if match == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// QueryMinimum returns the minimum plausible price for a query. Queries
// naming expensive product classes get a higher floor than the band's.
func QueryMinimum(query string) float64 {
	normalized := domain.NormalizeQuery(query)
	for _, kw := range []string{"laptop", "macbook", "notebook"} {
		if strings.Contains(normalized, kw) {
			return laptopMinPrice
		}
	}
	for _, kw := range []string{"phone", "iphone", "smartphone", "galaxy", "pixel"} {
		if strings.Contains(normalized, kw) {
			return phoneMinPrice
		}
	}
	return MinPlausiblePrice
}

// ValidPrice reports whether a candidate price is plausible for a query:
// inside the absolute band and above the query-sensitive minimum.
func ValidPrice(price float64, query string) bool {
	if price < MinPlausiblePrice || price > MaxPlausiblePrice {
		return false
	}
	return price >= QueryMinimum(query)
}

// ExtractQuote applies the rules in order and returns a quote from the
// first candidate that passes validation, or nil if every rule misses.
// A candidate failing validation moves on to the next rule rather than
// aborting: later rules are coarser but may still find the real price.
func ExtractQuote(p *Page, source domain.Source, query string, rules []Rule) *domain.Quote {
	for _, rule := range rules {
		candidate, ok := rule.Apply(p)
		if !ok {
			continue
		}
		if !ValidPrice(candidate.Price, query) {
			continue
		}

		title := strings.TrimSpace(candidate.Title)
		if title == "" {
			title = query + " - " + source.DisplayName() + " Result"
		}
		return &domain.Quote{Title: title, Price: candidate.Price}
	}
	return nil
}

// selectorRule builds a rule scoped to a result container: the price is
// read from priceSel inside the first container matching containerSel,
// the title from titleSel inside the same container. Empty titleSel
// skips title extraction.
func selectorRule(name, containerSel, priceSel, titleSel string) Rule {
	return Rule{
		Name: name,
		Apply: func(p *Page) (Candidate, bool) {
			if p.Doc == nil {
				return Candidate{}, false
			}

			container := p.Doc.Find(containerSel).First()
			if container.Length() == 0 {
				return Candidate{}, false
			}

			price, ok := ParsePrice(container.Find(priceSel).First().Text())
			if !ok {
				return Candidate{}, false
			}

			var title string
			if titleSel != "" {
				title = strings.TrimSpace(container.Find(titleSel).First().Text())
			}
			return Candidate{Title: title, Price: price}, true
		},
	}
}

// splitPriceRule builds a container-scoped rule for sites that render a
// price as separate whole and fraction parts.
func splitPriceRule(name, containerSel, wholeSel, fractionSel, titleSel string) Rule {
	return Rule{
		Name: name,
		Apply: func(p *Page) (Candidate, bool) {
			if p.Doc == nil {
				return Candidate{}, false
			}

			container := p.Doc.Find(containerSel).First()
			if container.Length() == 0 {
				return Candidate{}, false
			}

			whole, ok := ParsePrice(container.Find(wholeSel).First().Text())
			if !ok {
				return Candidate{}, false
			}

			// A missing fraction part means a whole-dollar price.
			text := container.Find(fractionSel).First().Text()
			if fraction, ok := ParsePrice(text); ok && fraction < 100 {
				whole += fraction / 100
			}

			var title string
			if titleSel != "" {
				title = strings.TrimSpace(container.Find(titleSel).First().Text())
			}
			return Candidate{Title: title, Price: whole}, true
		},
	}
}

// regexRule builds the coarsest kind of rule: the first currency-prefixed
// number anywhere in the raw document. High recall, low precision, so it
// always goes last.
func regexRule(name string, re *regexp.Regexp) Rule {
	return Rule{
		Name: name,
		Apply: func(p *Page) (Candidate, bool) {
			match := re.FindString(p.Raw)
			if match == "" {
				return Candidate{}, false
			}
			price, ok := ParsePrice(match)
			if !ok {
				return Candidate{}, false
			}
			return Candidate{Price: price}, true
		},
	}
}
