// Package domain defines the core business entities for Pricewatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - TrackedProduct: A product whose price is monitored across sources
//   - SourceResult: The latest acquisition outcome for one retail source
//   - PriceHistoryEntry: One immutable point in a product's price series
//   - Quote: A title/price pair produced by acquisition
//   - Settings: Operator-configurable behaviour
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
