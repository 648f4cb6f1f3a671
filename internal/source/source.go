// Package source provides the record-source collaborator the search core
// builds its index from. A RecordSource exposes four read-only list
// operations, one per entity variant. Backends are fail-soft at the
// collection level: a missing or corrupt collection yields an empty slice,
// never an error, so one bad collection cannot poison a rebuild.
package source

import (
	"context"

	"github.com/nzemmouri/subdeck/internal/model"
)

// Collection names as stored by the management application.
const (
	CollectionSuppliers = "suppliers"
	CollectionProducts  = "products"
	CollectionSales     = "sales"
	CollectionMovements = "credit_movements"
)

// RecordSource supplies the four record collections the index is built
// from. Implementations must return empty slices (not errors) for missing
// or corrupt collections; errors are reserved for the backing store being
// unreachable.
type RecordSource interface {
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListSales(ctx context.Context) ([]model.Sale, error)
	ListMovements(ctx context.Context) ([]model.CreditMovement, error)

	// Close releases backend resources. Safe to call multiple times.
	Close() error
}

// Static is an in-memory RecordSource for tests and seeding.
type Static struct {
	Suppliers []model.Supplier
	Products  []model.Product
	Sales     []model.Sale
	Movements []model.CreditMovement

	// Err, when set, is returned by every list call. Lets tests exercise
	// the indexer's per-collection fail-soft path.
	Err error
}

var _ RecordSource = (*Static)(nil)

func (s *Static) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Suppliers, nil
}

func (s *Static) ListProducts(ctx context.Context) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Products, nil
}

func (s *Static) ListSales(ctx context.Context) ([]model.Sale, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Sales, nil
}

func (s *Static) ListMovements(ctx context.Context) ([]model.CreditMovement, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Movements, nil
}

func (s *Static) Close() error { return nil }
