package command

import (
	"github.com/shopspring/decimal"

	"github.com/tair/storefront/internal/catalog"
	"github.com/tair/storefront/internal/product/domain"
)

// UpdateProductCommand represents the command to update a product.
// Nil fields are left unchanged.
type UpdateProductCommand struct {
	ProductID string
	Price     *decimal.Decimal
	IsActive  *bool
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	catalog *catalog.Catalog
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(c *catalog.Catalog) *UpdateProductHandler {
	return &UpdateProductHandler{catalog: c}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.catalog.Get(cmd.ProductID)
	if err != nil {
		return nil, err
	}

	if cmd.Price != nil {
		if err := product.SetPrice(*cmd.Price); err != nil {
			return nil, err
		}
	}

	if cmd.IsActive != nil {
		if *cmd.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	return product, nil
}
