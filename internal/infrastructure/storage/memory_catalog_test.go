package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/store-assistant/internal/domain/entity"
)

func testCatalog() *entity.Catalog {
	return &entity.Catalog{
		Source: "test",
		Products: []entity.Product{
			{ID: "1", Name: "Milk", Category: "Dairy", Description: "Full cream milk", Price: 50, Stock: entity.InStock},
			{ID: "2", Name: "Bread", Category: "Bakery", Description: "Whole wheat loaf", Price: 35},
			{ID: "3", Name: "MILK", Category: "Dairy", Description: "Toned milk", Price: 45},
		},
	}
}

func TestMemoryCatalogFindByNameFirstOccurrence(t *testing.T) {
	repo := NewMemoryCatalogRepository(testCatalog())

	p, ok := repo.FindByName("milk")
	require.True(t, ok)
	assert.Equal(t, "1", p.ID)

	p, ok = repo.FindByName("MiLk")
	require.True(t, ok)
	assert.Equal(t, "1", p.ID)

	_, ok = repo.FindByName("cheese")
	assert.False(t, ok)
}

func TestMemoryCatalogOrderAndPositions(t *testing.T) {
	repo := NewMemoryCatalogRepository(testCatalog())

	require.Equal(t, 3, repo.Len())
	for i := 0; i < repo.Len(); i++ {
		assert.Equal(t, i, repo.At(i).Position)
	}

	var names []string
	repo.Range(func(p entity.Product) bool {
		names = append(names, p.Name)
		return true
	})
	assert.Equal(t, []string{"Milk", "Bread", "MILK"}, names)
}

func TestMemoryCatalogRangeStops(t *testing.T) {
	repo := NewMemoryCatalogRepository(testCatalog())

	calls := 0
	repo.Range(func(p entity.Product) bool {
		calls++
		return false
	})
	assert.Equal(t, 1, calls)
}

func TestMemoryCatalogHead(t *testing.T) {
	repo := NewMemoryCatalogRepository(testCatalog())

	assert.Len(t, repo.Head(2), 2)
	assert.Len(t, repo.Head(10), 3)
	assert.Empty(t, repo.Head(0))
	assert.Empty(t, repo.Head(-1))

	head := repo.Head(1)
	head[0].Name = "changed"
	assert.Equal(t, "Milk", repo.At(0).Name)
}

func TestMemoryCatalogIsolatedFromSource(t *testing.T) {
	catalog := testCatalog()
	repo := NewMemoryCatalogRepository(catalog)

	catalog.Products[0].Name = "changed"
	assert.Equal(t, "Milk", repo.At(0).Name)
	assert.Equal(t, "test", repo.Source())
}

func TestMemoryCatalogEmpty(t *testing.T) {
	repo := NewMemoryCatalogRepository(&entity.Catalog{})

	assert.Equal(t, 0, repo.Len())
	assert.Empty(t, repo.Head(12))
	_, ok := repo.FindByName("")
	assert.False(t, ok)
}
