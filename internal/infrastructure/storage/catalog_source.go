package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yourusername/store-assistant/internal/domain/entity"
	"github.com/yourusername/store-assistant/internal/domain/repository"
	"github.com/yourusername/store-assistant/internal/infrastructure/parser"
)

// SourceKind which loader handles a catalog source
type SourceKind string

const (
	SourceCSV      SourceKind = "csv"
	SourceExcel    SourceKind = "excel"
	SourceSQLite   SourceKind = "sqlite"
	SourcePostgres SourceKind = "postgres"
)

type catalogSource struct {
	loaders map[SourceKind]repository.CatalogLoader
	logger  zerolog.Logger
}

// NewCatalogLoader picks a loader by the source prefix or file extension.
func NewCatalogLoader(logger zerolog.Logger) repository.CatalogLoader {
	return &catalogSource{
		loaders: map[SourceKind]repository.CatalogLoader{
			SourceCSV:      parser.NewCSVParser(),
			SourceExcel:    parser.NewExcelParser(),
			SourceSQLite:   NewSQLiteCatalogLoader(),
			SourcePostgres: NewPostgresCatalogLoader(),
		},
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// DetectSource maps a source string to its kind
func DetectSource(source string) (SourceKind, error) {
	lower := strings.ToLower(strings.TrimSpace(source))
	switch {
	case lower == "":
		return "", fmt.Errorf("catalog source is empty")
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return SourcePostgres, nil
	case strings.HasPrefix(lower, "sqlite://"):
		return SourceSQLite, nil
	}

	path, _, _ := strings.Cut(lower, "?")
	switch filepath.Ext(path) {
	case ".csv":
		return SourceCSV, nil
	case ".xlsx", ".xlsm":
		return SourceExcel, nil
	case ".db", ".sqlite", ".sqlite3":
		return SourceSQLite, nil
	}
	return "", fmt.Errorf("unsupported catalog source %q", source)
}

// Load dispatches to the matching loader and logs the outcome
func (c *catalogSource) Load(ctx context.Context, source string) (*entity.Catalog, error) {
	kind, err := DetectSource(source)
	if err != nil {
		return nil, &entity.DataLoadError{Source: source, Err: err}
	}

	catalog, err := c.loaders[kind].Load(ctx, source)
	if err != nil {
		c.logger.Error().Err(err).Str("kind", string(kind)).Msg("catalog load failed")
		return nil, err
	}

	if len(catalog.Products) == 0 {
		c.logger.Warn().Str("source", catalog.Source).Msg("catalog is empty, every query will go to the assistant")
	} else {
		c.logger.Info().
			Str("source", catalog.Source).
			Str("kind", string(kind)).
			Int("products", len(catalog.Products)).
			Msg("catalog loaded")
	}
	return catalog, nil
}
