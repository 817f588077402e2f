package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/meridian-labs/pricewatch-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driven"
)

// Store is a SQLite-backed persistence layer for tracked products.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.pricewatch/data/products.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pricewatch", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "products.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ProductStore returns a ProductStore interface backed by this store.
func (s *Store) ProductStore() driven.ProductStore {
	return &productStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_products.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Product Store ====================

// productStore implements driven.ProductStore.
type productStore struct {
	store *Store
}

var _ driven.ProductStore = (*productStore)(nil)

// Save stores or updates a product.
func (s *productStore) Save(ctx context.Context, product domain.TrackedProduct) error {
	sourcesJSON, err := json.Marshal(product.Sources)
	if err != nil {
		return fmt.Errorf("marshalling sources: %w", err)
	}
	resultsJSON, err := json.Marshal(product.Results)
	if err != nil {
		return fmt.Errorf("marshalling results: %w", err)
	}
	historyJSON, err := json.Marshal(product.History)
	if err != nil {
		return fmt.Errorf("marshalling history: %w", err)
	}

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO products (id, name, query, sources, target_price, best_price, results, history, created_at, last_checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			query = excluded.query,
			sources = excluded.sources,
			target_price = excluded.target_price,
			best_price = excluded.best_price,
			results = excluded.results,
			history = excluded.history,
			last_checked_at = excluded.last_checked_at
	`, product.ID, product.Name, product.Query, string(sourcesJSON),
		product.TargetPrice, product.BestPrice, string(resultsJSON), string(historyJSON),
		product.CreatedAt.UTC(), nullableTime(product.LastCheckedAt))
	if err != nil {
		return fmt.Errorf("saving product: %w", err)
	}
	return nil
}

// Get retrieves a product by ID.
func (s *productStore) Get(ctx context.Context, id string) (*domain.TrackedProduct, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, query, sources, target_price, best_price, results, history, created_at, last_checked_at
		FROM products WHERE id = ?
	`, id)

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	return product, nil
}

// Delete removes a product and its history.
func (s *productStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAll removes every tracked product.
func (s *productStore) DeleteAll(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM products"); err != nil {
		return fmt.Errorf("clearing products: %w", err)
	}
	return nil
}

// List returns all tracked products ordered by creation time.
func (s *productStore) List(ctx context.Context) ([]domain.TrackedProduct, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, query, sources, target_price, best_price, results, history, created_at, last_checked_at
		FROM products ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []domain.TrackedProduct
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("listing products: %w", err)
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

// Count returns the number of tracked products.
func (s *productStore) Count(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return count, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanProduct reads one product row.
func scanProduct(row scanner) (*domain.TrackedProduct, error) {
	var (
		product     domain.TrackedProduct
		sourcesJSON string
		resultsJSON string
		historyJSON string
		lastChecked sql.NullTime
	)

	err := row.Scan(&product.ID, &product.Name, &product.Query, &sourcesJSON,
		&product.TargetPrice, &product.BestPrice, &resultsJSON, &historyJSON,
		&product.CreatedAt, &lastChecked)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(sourcesJSON), &product.Sources); err != nil {
		return nil, fmt.Errorf("unmarshalling sources: %w", err)
	}
	if err := json.Unmarshal([]byte(resultsJSON), &product.Results); err != nil {
		return nil, fmt.Errorf("unmarshalling results: %w", err)
	}
	if err := json.Unmarshal([]byte(historyJSON), &product.History); err != nil {
		return nil, fmt.Errorf("unmarshalling history: %w", err)
	}
	if lastChecked.Valid {
		product.LastCheckedAt = lastChecked.Time
	}
	return &product, nil
}

// nullableTime maps the zero time to NULL.
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
