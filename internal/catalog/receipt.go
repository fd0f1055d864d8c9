package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/storefront/internal/product/domain"
)

// LineItem is one basket entry. Err carries a resolution failure for lines whose
// product could not be looked up; such lines are reported instead of bought.
type LineItem struct {
	Product  *domain.Product
	Quantity int
	Label    string
	Err      error
}

// Line builds a basket entry for a known product
func Line(product *domain.Product, quantity int) LineItem {
	return LineItem{Product: product, Quantity: quantity}
}

// LineResult is the outcome of one basket entry
type LineResult struct {
	Product  *domain.Product
	Quantity int
	Amount   decimal.Decimal
	Err      error

	label string
}

// ProductName names the product of the line, or its label when it was never resolved
func (l LineResult) ProductName() string {
	if l.Product != nil {
		return l.Product.Name()
	}
	if l.label != "" {
		return l.label
	}
	return "unknown product"
}

// Reason renders a failed line for the presentation layer
func (l LineResult) Reason() string {
	if l.Err == nil {
		return ""
	}
	return fmt.Sprintf("Could not buy %s: %v", l.ProductName(), l.Err)
}

// Receipt is the result of a checkout
type Receipt struct {
	ID    string
	Total decimal.Decimal
	Lines []LineResult
}

// Succeeded returns the lines that were bought
func (r *Receipt) Succeeded() []LineResult {
	var lines []LineResult
	for _, l := range r.Lines {
		if l.Err == nil {
			lines = append(lines, l)
		}
	}
	return lines
}

// Failures returns the lines that could not be bought
func (r *Receipt) Failures() []LineResult {
	var lines []LineResult
	for _, l := range r.Lines {
		if l.Err != nil {
			lines = append(lines, l)
		}
	}
	return lines
}
