package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzemmouri/subdeck/internal/model"
)

func openTestJSONDir(t *testing.T) (*JSONDirSource, string) {
	t.Helper()
	dir := t.TempDir()
	src, err := OpenJSONDir(dir, nil)
	require.NoError(t, err)
	return src, dir
}

func TestJSONDir_OpenRejectsMissingDir(t *testing.T) {
	_, err := OpenJSONDir(filepath.Join(t.TempDir(), "absent"), nil)
	assert.Error(t, err)
}

func TestJSONDir_OpenRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	_, err := OpenJSONDir(path, nil)
	assert.Error(t, err)
}

func TestJSONDir_RoundTrip(t *testing.T) {
	src, _ := openTestJSONDir(t)
	ctx := context.Background()

	sales := []model.Sale{
		{ID: "s1", ProductName: "Netflix Premium 4K", CustomerName: "Xander Brahimi", TotalPrice: 100},
	}
	require.NoError(t, src.WriteCollection(ctx, CollectionSales, sales))

	got, err := src.ListSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, sales, got)
}

func TestJSONDir_MissingFileIsEmpty(t *testing.T) {
	src, _ := openTestJSONDir(t)

	got, err := src.ListMovements(context.Background())

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestJSONDir_CorruptFileIsEmpty(t *testing.T) {
	src, dir := openTestJSONDir(t)
	path := filepath.Join(dir, CollectionProducts+".json")
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o644))

	got, err := src.ListProducts(context.Background())

	require.NoError(t, err, "a corrupt file degrades to empty")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestJSONDir_NullFileIsEmpty(t *testing.T) {
	src, dir := openTestJSONDir(t)
	path := filepath.Join(dir, CollectionSuppliers+".json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

	got, err := src.ListSuppliers(context.Background())

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}
