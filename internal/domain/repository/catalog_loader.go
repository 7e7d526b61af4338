package repository

import (
	"context"

	"github.com/yourusername/store-assistant/internal/domain/entity"
)

// CatalogLoader turns a tabular source into a catalog
type CatalogLoader interface {
	// Load reads every row of source. Any failure is an *entity.DataLoadError.
	Load(ctx context.Context, source string) (*entity.Catalog, error)
}
