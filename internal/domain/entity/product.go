package entity

import (
	"strings"
	"time"
)

// UnknownLocation is shown when a product has no aisle on record.
const UnknownLocation = "Unknown aisle"

// StockStatus product availability
type StockStatus int

const (
	OutOfStock StockStatus = iota
	InStock
)

// ParseStock maps the raw stock cell to a status. Only "yes" counts as in stock.
func ParseStock(raw string) StockStatus {
	if strings.EqualFold(strings.TrimSpace(raw), "yes") {
		return InStock
	}
	return OutOfStock
}

// Label human readable stock label
func (s StockStatus) Label() string {
	if s == InStock {
		return "In Stock"
	}
	return "Out of Stock"
}

func (s StockStatus) String() string {
	return s.Label()
}

// Product catalog entry
type Product struct {
	ID          string
	Position    int // 0-based row order in the source
	Name        string
	Category    string
	Description string
	Price       float64
	Stock       StockStatus
	Location    string
}

// Aisle returns the location or the placeholder when it is missing.
func (p Product) Aisle() string {
	if loc := strings.TrimSpace(p.Location); loc != "" {
		return loc
	}
	return UnknownLocation
}

// Catalog the product table as loaded from its source
type Catalog struct {
	Products []Product
	LoadedAt time.Time
	Source   string
}
