package usecase

import (
	"github.com/yourusername/store-assistant/internal/domain/entity"
	"github.com/yourusername/store-assistant/internal/domain/repository"
)

// TrendingLimit products shown on the trending list
const TrendingLimit = 12

// ProductUseCase read-only catalog views
type ProductUseCase interface {
	// Trending first TrendingLimit products in catalog order
	Trending() []entity.Product

	// List first limit products, all when limit <= 0
	List(limit int) []entity.Product

	// Count number of loaded products
	Count() int

	// Source where the catalog came from
	Source() string
}

type productUseCase struct {
	catalog repository.CatalogRepository
}

// NewProductUseCase catalog views over a loaded catalog
func NewProductUseCase(catalog repository.CatalogRepository) ProductUseCase {
	return &productUseCase{catalog: catalog}
}

func (u *productUseCase) Trending() []entity.Product {
	return u.catalog.Head(TrendingLimit)
}

func (u *productUseCase) List(limit int) []entity.Product {
	if limit <= 0 {
		limit = u.catalog.Len()
	}
	return u.catalog.Head(limit)
}

func (u *productUseCase) Count() int {
	return u.catalog.Len()
}

func (u *productUseCase) Source() string {
	return u.catalog.Source()
}
