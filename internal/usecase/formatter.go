package usecase

import (
	"strconv"
	"strings"

	"github.com/yourusername/store-assistant/internal/domain/entity"
)

// DefaultCurrency symbol placed before every price
const DefaultCurrency = "₹"

// ResponseFormatter renders a matched product into the chat reply
type ResponseFormatter interface {
	Format(p entity.Product) string
}

type responseFormatter struct {
	currency string
}

// NewResponseFormatter empty currency means DefaultCurrency
func NewResponseFormatter(currency string) ResponseFormatter {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &responseFormatter{currency: currency}
}

// Format four lines: name and category, price and stock, location, description
func (f *responseFormatter) Format(p entity.Product) string {
	var sb strings.Builder
	sb.WriteString("*" + p.Name + "* (" + p.Category + ")\n")
	sb.WriteString(f.currency + FormatPrice(p.Price) + " — " + p.Stock.Label() + "\n")
	sb.WriteString("Location: " + p.Aisle() + "\n")
	sb.WriteString(p.Description)
	return sb.String()
}

// FormatPrice shortest decimal form, 50 -> "50", 49.5 -> "49.5"
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
