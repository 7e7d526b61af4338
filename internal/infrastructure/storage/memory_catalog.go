package storage

import (
	"strings"

	"github.com/yourusername/store-assistant/internal/domain/entity"
	"github.com/yourusername/store-assistant/internal/domain/repository"
)

// memoryCatalogRepository is built once and never written again, so reads need no lock.
type memoryCatalogRepository struct {
	products []entity.Product
	byName   map[string]int // lower-case name -> first position
	source   string
}

// NewMemoryCatalogRepository in-memory catalog index over a loaded catalog
func NewMemoryCatalogRepository(catalog *entity.Catalog) repository.CatalogRepository {
	products := make([]entity.Product, len(catalog.Products))
	copy(products, catalog.Products)

	byName := make(map[string]int, len(products))
	for i := range products {
		products[i].Position = i
		key := strings.ToLower(products[i].Name)
		if _, seen := byName[key]; !seen {
			byName[key] = i
		}
	}

	return &memoryCatalogRepository{
		products: products,
		byName:   byName,
		source:   catalog.Source,
	}
}

// Len number of products
func (m *memoryCatalogRepository) Len() int {
	return len(m.products)
}

// At product at position i
func (m *memoryCatalogRepository) At(i int) entity.Product {
	return m.products[i]
}

// Range iterates in catalog order
func (m *memoryCatalogRepository) Range(fn func(p entity.Product) bool) {
	for _, p := range m.products {
		if !fn(p) {
			return
		}
	}
}

// FindByName exact case-insensitive match, first occurrence wins
func (m *memoryCatalogRepository) FindByName(name string) (entity.Product, bool) {
	i, ok := m.byName[strings.ToLower(name)]
	if !ok {
		return entity.Product{}, false
	}
	return m.products[i], true
}

// Head first n products in catalog order
func (m *memoryCatalogRepository) Head(n int) []entity.Product {
	if n <= 0 {
		return []entity.Product{}
	}
	if n > len(m.products) {
		n = len(m.products)
	}
	out := make([]entity.Product, n)
	copy(out, m.products[:n])
	return out
}

// Source where the catalog came from
func (m *memoryCatalogRepository) Source() string {
	return m.source
}
