package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/store-assistant/internal/domain/entity"
)

func newSQLiteCatalog(t *testing.T, table string, withLocation bool) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	schema := `CREATE TABLE "` + table + `" (name TEXT, category TEXT, description TEXT, price REAL, stock TEXT`
	if withLocation {
		schema += `, location TEXT`
	}
	schema += `)`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	if withLocation {
		_, err = db.Exec(`INSERT INTO "`+table+`" VALUES
			('Milk', 'Dairy', 'Full cream milk', 50, 'Yes', 'Aisle 3'),
			('Bread', 'Bakery', 'Whole wheat loaf', 35.5, 'no', NULL)`)
	} else {
		_, err = db.Exec(`INSERT INTO "` + table + `" VALUES ('Milk', 'Dairy', 'Full cream milk', 50, 'Yes')`)
	}
	require.NoError(t, err)

	return path
}

func TestSQLiteLoad(t *testing.T) {
	path := newSQLiteCatalog(t, "products", true)

	catalog, err := NewSQLiteCatalogLoader().Load(context.Background(), "sqlite://"+path)
	require.NoError(t, err)
	require.Len(t, catalog.Products, 2)

	milk := catalog.Products[0]
	assert.Equal(t, "Milk", milk.Name)
	assert.Equal(t, 50.0, milk.Price)
	assert.Equal(t, entity.InStock, milk.Stock)
	assert.Equal(t, "Aisle 3", milk.Aisle())

	bread := catalog.Products[1]
	assert.Equal(t, 35.5, bread.Price)
	assert.Equal(t, entity.OutOfStock, bread.Stock)
	assert.Equal(t, entity.UnknownLocation, bread.Aisle())
}

func TestSQLiteLoadBarePathAndTable(t *testing.T) {
	path := newSQLiteCatalog(t, "inventory", false)

	catalog, err := NewSQLiteCatalogLoader().Load(context.Background(), path+"?table=inventory")
	require.NoError(t, err)
	assert.Len(t, catalog.Products, 1)
}

func TestSQLiteLoadErrors(t *testing.T) {
	path := newSQLiteCatalog(t, "products", false)

	tests := []struct {
		name   string
		source string
	}{
		{"missing file", "sqlite://" + filepath.Join(t.TempDir(), "missing.db")},
		{"missing table", "sqlite://" + path + "?table=nope"},
		{"empty path", "sqlite://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSQLiteCatalogLoader().Load(context.Background(), tt.source)
			var loadErr *entity.DataLoadError
			require.ErrorAs(t, err, &loadErr)
		})
	}
}

func TestParseSQLiteSource(t *testing.T) {
	path, table, err := parseSQLiteSource("sqlite://data/shop.db?table=items")
	require.NoError(t, err)
	assert.Equal(t, "data/shop.db", path)
	assert.Equal(t, "items", table)

	path, table, err = parseSQLiteSource("shop.sqlite")
	require.NoError(t, err)
	assert.Equal(t, "shop.sqlite", path)
	assert.Equal(t, defaultCatalogTable, table)
}

func TestQuoteSQLiteIdent(t *testing.T) {
	assert.Equal(t, `"products"`, quoteSQLiteIdent("products"))
	assert.Equal(t, `"we""ird"`, quoteSQLiteIdent(`we"ird`))
}
