// Package sqlite provides a SQLite-based implementation of the
// ProductStore driven port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory. Source results and price history are stored
// as JSON columns: they are replaced wholesale on every check and only
// ever read back as a unit, so relational decomposition buys nothing.
//
// # Data Location
//
// By default, the database is stored at ~/.pricewatch/data/products.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
