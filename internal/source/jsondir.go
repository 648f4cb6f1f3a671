package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	sderrors "github.com/nzemmouri/subdeck/internal/errors"
	"github.com/nzemmouri/subdeck/internal/model"
)

// lockRetryDelay is the poll interval while waiting for the writer's lock.
const lockRetryDelay = 50 * time.Millisecond

// JSONDirSource reads collections from a directory holding one
// <collection>.json file per collection. The management application
// rewrites these files under an exclusive flock; reads take the shared
// side of the same lock so a half-written file is never observed.
type JSONDirSource struct {
	dir    string
	logger *slog.Logger
}

var _ RecordSource = (*JSONDirSource)(nil)

// OpenJSONDir opens a JSON collection directory.
func OpenJSONDir(dir string, logger *slog.Logger) (*JSONDirSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, sderrors.SourceError(fmt.Sprintf("open collection directory %s", dir), err)
	}
	if !info.IsDir() {
		return nil, sderrors.SourceError(fmt.Sprintf("%s is not a directory", dir), nil)
	}
	return &JSONDirSource{dir: dir, logger: logger}, nil
}

func (s *JSONDirSource) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	return readJSONFile[model.Supplier](ctx, s, CollectionSuppliers)
}

func (s *JSONDirSource) ListProducts(ctx context.Context) ([]model.Product, error) {
	return readJSONFile[model.Product](ctx, s, CollectionProducts)
}

func (s *JSONDirSource) ListSales(ctx context.Context) ([]model.Sale, error) {
	return readJSONFile[model.Sale](ctx, s, CollectionSales)
}

func (s *JSONDirSource) ListMovements(ctx context.Context) ([]model.CreditMovement, error) {
	return readJSONFile[model.CreditMovement](ctx, s, CollectionMovements)
}

func (s *JSONDirSource) Close() error { return nil }

// readJSONFile reads <dir>/<name>.json under a shared lock. A missing or
// undecodable file degrades to an empty slice per the fail-soft contract.
func readJSONFile[T any](ctx context.Context, s *JSONDirSource, name string) ([]T, error) {
	path := filepath.Join(s.dir, name+".json")

	lock := flock.New(path + ".lock")
	locked, err := lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, sderrors.New(sderrors.ErrCodeSourceLockTimeout,
			fmt.Sprintf("lock collection %s", name), err)
	}
	if locked {
		defer func() { _ = lock.Unlock() }()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		s.logger.Debug("collection_missing", slog.String("collection", name))
		return []T{}, nil
	case err != nil:
		return nil, sderrors.SourceError(fmt.Sprintf("read collection %s", name), err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
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

// WriteCollection writes a collection file under the exclusive lock.
// Used by seeding and tests; the search core itself never writes.
func (s *JSONDirSource) WriteCollection(ctx context.Context, name string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return sderrors.Wrap(sderrors.ErrCodeCollectionCorrupt, err)
	}

	path := filepath.Join(s.dir, name+".json")
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return sderrors.New(sderrors.ErrCodeSourceLockTimeout,
			fmt.Sprintf("lock collection %s", name), err)
	}
	if locked {
		defer func() { _ = lock.Unlock() }()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return sderrors.SourceError(fmt.Sprintf("write collection %s", name), err)
	}
	return nil
}
