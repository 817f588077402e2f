// Package sources implements price acquisition from third-party retail
// sites: per-source rate limiting, short-TTL response caching, the
// fetch-and-extract pipeline and the deterministic fallback generator.
//
// Each supported site is a Site value combining a search URL builder with
// an ordered list of extraction rules, tried most specific first. The
// package implements the driven ports consumed by the acquisition
// orchestrator in core/services.
//
// # Import Rules
//
//   - Can Import: domain, ports/driven, logger, external libraries
//   - Cannot Import: core/services, any adapter package
package sources
