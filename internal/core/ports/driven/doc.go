// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ProductStore: Tracked-product persistence
//   - ConfigStore: Application configuration
//   - PriceSource: Fetches and extracts a quote from one retail site
//   - SourceRegistry: Resolves PriceSource implementations
//   - RateLimiter: Per-source request admission
//   - QuoteCache: Short-TTL acquisition memoisation
//   - FallbackPricer: Deterministic stand-in quotes
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Notifier: Renders alerts and price updates. Without it, checks
//     still run and history is still recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or source package
package driven
