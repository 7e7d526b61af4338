package parser

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/store-assistant/internal/domain/entity"
	"github.com/yourusername/store-assistant/internal/domain/repository"
)

type excelParser struct{}

// NewExcelParser catalog loader for .xlsx workbooks
func NewExcelParser() repository.CatalogLoader {
	return &excelParser{}
}

// Load reads the first sheet of the workbook at path.
func (e *excelParser) Load(ctx context.Context, path string) (*entity.Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &entity.DataLoadError{Source: path, Err: fmt.Errorf("open excel file: %w", err)}
	}
	defer f.Close()

	return e.parseExcelFile(f, path)
}

func (e *excelParser) parseExcelFile(f *excelize.File, source string) (*entity.Catalog, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &entity.DataLoadError{Source: source, Err: fmt.Errorf("excel file has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &entity.DataLoadError{Source: source, Err: fmt.Errorf("get rows: %w", err)}
	}
	if len(rows) == 0 {
		return nil, &entity.DataLoadError{Source: source, Err: errEmptySource}
	}

	products, err := BuildProducts(source, rows[0], rows[1:])
	if err != nil {
		return nil, err
	}

	return &entity.Catalog{
		Products: products,
		LoadedAt: time.Now(),
		Source:   source,
	}, nil
}
