package parser

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/yourusername/store-assistant/internal/domain/entity"
	"github.com/yourusername/store-assistant/internal/domain/repository"
)

type csvParser struct{}

// NewCSVParser catalog loader for comma separated files
func NewCSVParser() repository.CatalogLoader {
	return &csvParser{}
}

// Load reads the CSV file at path. The first record is the header.
func (c *csvParser) Load(ctx context.Context, path string) (*entity.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &entity.DataLoadError{Source: path, Err: err}
	}
	defer f.Close()

	return c.parse(f, path)
}

func (c *csvParser) parse(r io.Reader, source string) (*entity.Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &entity.DataLoadError{Source: source, Err: fmt.Errorf("read csv: %w", err)}
	}
	if len(records) == 0 {
		return nil, &entity.DataLoadError{Source: source, Err: errEmptySource}
	}

	products, err := BuildProducts(source, records[0], records[1:])
	if err != nil {
		return nil, err
	}

	return &entity.Catalog{
		Products: products,
		LoadedAt: time.Now(),
		Source:   source,
	}, nil
}
