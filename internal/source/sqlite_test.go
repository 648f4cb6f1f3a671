package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzemmouri/subdeck/internal/model"
)

func openTestSQLite(t *testing.T) *SQLiteSource {
	t.Helper()
	src, err := OpenSQLite(filepath.Join(t.TempDir(), "collections.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	return src
}

func TestSQLite_RoundTrip(t *testing.T) {
	src := openTestSQLite(t)
	ctx := context.Background()

	suppliers := []model.Supplier{
		{ID: "p1", Name: "Netflix Supplier", IsActive: true, CreditBalance: 1250.5},
		{ID: "p2", Name: "Spotify Platform"},
	}
	require.NoError(t, src.WriteCollection(ctx, CollectionSuppliers, suppliers))

	got, err := src.ListSuppliers(ctx)
	require.NoError(t, err)
	assert.Equal(t, suppliers, got)
}

func TestSQLite_MissingCollectionIsEmpty(t *testing.T) {
	src := openTestSQLite(t)

	got, err := src.ListProducts(context.Background())

	require.NoError(t, err, "a missing collection is not an error")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSQLite_CorruptCollectionIsEmpty(t *testing.T) {
	src := openTestSQLite(t)
	ctx := context.Background()

	// An object document where an array is expected fails to decode.
	require.NoError(t, src.WriteCollection(ctx, CollectionSales, map[string]string{"not": "an array"}))

	got, err := src.ListSales(ctx)

	require.NoError(t, err, "a corrupt collection degrades to empty")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSQLite_NullDocumentIsEmpty(t *testing.T) {
	src := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, src.WriteCollection(ctx, CollectionMovements, nil))

	got, err := src.ListMovements(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSQLite_WriteReplacesDocument(t *testing.T) {
	src := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, src.WriteCollection(ctx, CollectionSuppliers,
		[]model.Supplier{{ID: "p1", Name: "Old"}}))
	require.NoError(t, src.WriteCollection(ctx, CollectionSuppliers,
		[]model.Supplier{{ID: "p1", Name: "New"}, {ID: "p2", Name: "Other"}}))

	got, err := src.ListSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "New", got[0].Name)
}

func TestSQLite_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "collections.db")

	src, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	defer src.Close()

	got, err := src.ListSuppliers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
