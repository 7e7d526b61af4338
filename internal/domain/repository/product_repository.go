package repository

import (
	"github.com/yourusername/store-assistant/internal/domain/entity"
)

// CatalogRepository read-only access to the loaded catalog
type CatalogRepository interface {
	// Len number of products
	Len() int

	// At product at catalog position i
	At(i int) entity.Product

	// Range calls fn for every product in catalog order until fn returns false
	Range(fn func(p entity.Product) bool)

	// FindByName case-insensitive exact name lookup, first occurrence wins
	FindByName(name string) (entity.Product, bool)

	// Head first n products
	Head(n int) []entity.Product

	// Source where the catalog was loaded from
	Source() string
}

// Matcher one matching tier. Returns entity.ErrNoMatch when nothing qualifies.
type Matcher interface {
	Match(catalog CatalogRepository, query entity.Query) (entity.Product, error)
}
