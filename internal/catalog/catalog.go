// Package catalog holds the in-memory product catalog and runs orders against it.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/pkg/logger"
)

// Catalog is an ordered collection of products. Insertion order is kept for display
// and the same product may be added more than once.
type Catalog struct {
	mu       sync.RWMutex
	products []*domain.Product
}

// New creates a catalog holding the given products
func New(products ...*domain.Product) *Catalog {
	return &Catalog{products: slices.Clone(products)}
}

// Add appends a product
func (c *Catalog) Add(product *domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append(c.products, product)
}

// Remove drops the first occurrence of product. A product that is not in the
// catalog is logged and reported by returning false.
func (c *Catalog) Remove(product *domain.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.Index(c.products, product)
	if i < 0 {
		name := "<nil>"
		if product != nil {
			name = product.Name()
		}
		logger.Logger.Warn().
			Str("product", name).
			Msg("Product not found in catalog")
		return false
	}

	c.products = slices.Delete(c.products, i, i+1)
	return true
}

// Contains reports whether product is in the catalog
func (c *Catalog) Contains(product *domain.Product) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Contains(c.products, product)
}

// Find looks a product up by its identifier
func (c *Catalog) Find(id string) (*domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// Products returns every product, active or not, in insertion order
func (c *Catalog) Products() []*domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.products)
}

// ActiveProducts returns the products that can currently be bought
func (c *Catalog) ActiveProducts() []*domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active := make([]*domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// TotalQuantity sums the stock of every product, inactive ones included
func (c *Catalog) TotalQuantity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, p := range c.products {
		total += p.Quantity()
	}
	return total
}

// Order buys every line and returns the total of the lines that succeeded.
// Failed lines are logged and skipped; they never stop the order.
func (c *Catalog) Order(ctx context.Context, items []LineItem) decimal.Decimal {
	return c.Checkout(ctx, items).Total
}

// Checkout runs the same pipeline as Order and reports the outcome of every line
func (c *Catalog) Checkout(ctx context.Context, items []LineItem) *Receipt {
	receipt := &Receipt{
		ID:    uuid.NewString(),
		Total: decimal.Zero,
		Lines: make([]LineResult, 0, len(items)),
	}

	for _, item := range items {
		line := LineResult{Product: item.Product, Quantity: item.Quantity, label: item.Label}

		if item.Product == nil {
			line.Err = item.Err
			if line.Err == nil {
				line.Err = &domain.ValidationError{Field: "product", Message: "is required"}
			}
		} else {
			line.Amount, line.Err = item.Product.Buy(item.Quantity)
		}

		if line.Err != nil {
			logger.Warn(ctx).
				Str("order_id", receipt.ID).
				Str("product", line.ProductName()).
				Int("quantity", item.Quantity).
				Err(line.Err).
				Msg("Could not buy product")
		} else {
			receipt.Total = receipt.Total.Add(line.Amount)
		}

		receipt.Lines = append(receipt.Lines, line)
	}

	return receipt
}

// Get is Find for callers that want an error: a missing id yields domain.ErrNotFound
func (c *Catalog) Get(id string) (*domain.Product, error) {
	if p, ok := c.Find(id); ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
}
