package parser

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/yourusername/store-assistant/internal/domain/entity"
)

const (
	colName        = "name"
	colCategory    = "category"
	colDescription = "description"
	colPrice       = "price"
	colStock       = "stock"
	colLocation    = "location"
)

// RequiredColumns every source must provide these
var RequiredColumns = []string{colName, colCategory, colDescription, colPrice, colStock}

var (
	errMissingColumn = errors.New("required column missing")
	errMissingValue  = errors.New("required value missing")
	errEmptySource   = errors.New("no header row")
)

// BuildProducts validates header and rows and converts them to products in row order.
// Row numbers in errors count the header as row 1.
func BuildProducts(source string, header []string, rows [][]string) ([]entity.Product, error) {
	if len(header) == 0 {
		return nil, &entity.DataLoadError{Source: source, Err: errEmptySource}
	}

	columns := mapColumns(header)
	for _, col := range RequiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, &entity.DataLoadError{Source: source, Field: col, Err: errMissingColumn}
		}
	}
	locationCol, hasLocation := columns[colLocation]

	products := make([]entity.Product, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2

		if isEmptyRow(row) {
			continue
		}

		values := make(map[string]string, len(RequiredColumns))
		for _, col := range RequiredColumns {
			v := cell(row, columns[col])
			if v == "" {
				return nil, &entity.DataLoadError{Source: source, Row: rowNum, Field: col, Err: errMissingValue}
			}
			values[col] = v
		}

		price, err := parsePrice(values[colPrice])
		if err != nil {
			return nil, &entity.DataLoadError{Source: source, Row: rowNum, Field: colPrice, Err: err}
		}

		product := entity.Product{
			ID:          uuid.New().String(),
			Position:    len(products),
			Name:        values[colName],
			Category:    values[colCategory],
			Description: values[colDescription],
			Price:       price,
			Stock:       entity.ParseStock(values[colStock]),
		}
		if hasLocation {
			product.Location = cell(row, locationCol)
		}

		products = append(products, product)
	}

	return products, nil
}

// mapColumns lower-cased header name to index, first duplicate wins
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")))
		if name == "" {
			continue
		}
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	return columns
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// groupedNumber matches 1,299 and 12,345.50 as well as lakh grouping like 1,00,000
var groupedNumber = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$|^\d{1,2}(,\d{2})*,\d{3}(\.\d+)?$`)

// parsePrice accepts plain numbers with optional currency marks and thousands grouping.
// Any other comma, a decimal comma included, is an error.
func parsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	for _, mark := range []string{" ", "₹", "$", "€", "£", "rs.", "Rs."} {
		s = strings.ReplaceAll(s, mark, "")
	}
	if s == "" {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	if strings.Contains(s, ",") {
		if !groupedNumber.MatchString(s) {
			return 0, fmt.Errorf("invalid price %q", raw)
		}
		s = strings.ReplaceAll(s, ",", "")
	}

	price, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	if price < 0 {
		return 0, fmt.Errorf("negative price %q", raw)
	}
	return price, nil
}
