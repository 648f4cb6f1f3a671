package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	sderrors "github.com/nzemmouri/subdeck/internal/errors"
	"github.com/nzemmouri/subdeck/internal/model"
)

// SQLiteSource reads collections from a SQLite database. The management
// application stores each collection as one JSON array document in the
// collections table, keyed by name. Reads use WAL-friendly read-only
// access so a writing process is never blocked.
type SQLiteSource struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ RecordSource = (*SQLiteSource)(nil)

// OpenSQLite opens the collections database at path. The schema is
// created if absent so a fresh install searches an empty dataset instead
// of failing.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, sderrors.SourceError(fmt.Sprintf("create source directory %s", dir), err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, sderrors.SourceError(fmt.Sprintf("open source database %s", path), err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, sderrors.SourceError("initialize collections schema", err)
	}

	return &SQLiteSource{db: db, path: path, logger: logger}, nil
}

func (s *SQLiteSource) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	return readCollection[model.Supplier](ctx, s, CollectionSuppliers)
}

func (s *SQLiteSource) ListProducts(ctx context.Context) ([]model.Product, error) {
	return readCollection[model.Product](ctx, s, CollectionProducts)
}

func (s *SQLiteSource) ListSales(ctx context.Context) ([]model.Sale, error) {
	return readCollection[model.Sale](ctx, s, CollectionSales)
}

func (s *SQLiteSource) ListMovements(ctx context.Context) ([]model.CreditMovement, error) {
	return readCollection[model.CreditMovement](ctx, s, CollectionMovements)
}

// Close closes the database handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// WriteCollection replaces a collection document wholesale. Used by
// seeding and tests; the search core itself never writes.
func (s *SQLiteSource) WriteCollection(ctx context.Context, name string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return sderrors.Wrap(sderrors.ErrCodeCollectionCorrupt, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO collections (name, data) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data`,
		name, string(data))
	if err != nil {
		return sderrors.SourceError(fmt.Sprintf("write collection %s", name), err)
	}
	return nil
}

// readCollection loads one collection document and decodes it. A missing
// row or undecodable document degrades to an empty slice per the
// fail-soft source contract.
func readCollection[T any](ctx context.Context, s *SQLiteSource, name string) ([]T, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE name = ?`, name).Scan(&data)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.Debug("collection_missing", slog.String("collection", name))
		return []T{}, nil
	case err != nil:
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, sderrors.SourceError(fmt.Sprintf("read collection %s", name), err)
	}

	var records []T
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		s.logger.Warn("collection_corrupt",
			slog.String("collection", name),
			slog.String("error", err.Error()))
		return []T{}, nil
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}
