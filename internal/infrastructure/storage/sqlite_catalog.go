package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/store-assistant/internal/domain/entity"
	"github.com/yourusername/store-assistant/internal/domain/repository"
	"github.com/yourusername/store-assistant/internal/infrastructure/parser"
)

const defaultCatalogTable = "products"

type sqliteCatalogLoader struct{}

// NewSQLiteCatalogLoader reads the catalog from a table in a SQLite file.
// Source form: "sqlite://path/to/file.db?table=products" or a bare .db/.sqlite path.
func NewSQLiteCatalogLoader() repository.CatalogLoader {
	return &sqliteCatalogLoader{}
}

// Load reads every row of the catalog table
func (s *sqliteCatalogLoader) Load(ctx context.Context, source string) (*entity.Catalog, error) {
	path, table, err := parseSQLiteSource(source)
	if err != nil {
		return nil, &entity.DataLoadError{Source: source, Err: err}
	}

	if _, err := os.Stat(path); err != nil {
		return nil, &entity.DataLoadError{Source: source, Err: err}
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, &entity.DataLoadError{Source: source, Err: fmt.Errorf("open sqlite: %w", err)}
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteSQLiteIdent(table))
	if err != nil {
		return nil, &entity.DataLoadError{Source: source, Err: fmt.Errorf("query %s: %w", table, err)}
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, &entity.DataLoadError{Source: source, Err: err}
	}

	var records [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(header))
		dest := make([]any, len(header))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, &entity.DataLoadError{Source: source, Row: len(records) + 2, Err: err}
		}

		record := make([]string, len(header))
		for i, c := range cells {
			if c.Valid {
				record[i] = c.String
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, &entity.DataLoadError{Source: source, Err: err}
	}

	products, err := parser.BuildProducts(source, header, records)
	if err != nil {
		return nil, err
	}

	return &entity.Catalog{
		Products: products,
		LoadedAt: time.Now(),
		Source:   source,
	}, nil
}

func parseSQLiteSource(source string) (path, table string, err error) {
	rest := strings.TrimPrefix(source, "sqlite://")
	path, rawQuery, _ := strings.Cut(rest, "?")
	if path == "" {
		return "", "", fmt.Errorf("sqlite path is empty")
	}

	table = defaultCatalogTable
	if rawQuery != "" {
		q, err := url.ParseQuery(rawQuery)
		if err != nil {
			return "", "", fmt.Errorf("parse sqlite source query: %w", err)
		}
		if t := q.Get("table"); t != "" {
			table = t
		}
	}
	return path, table, nil
}

func quoteSQLiteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
