package command

import (
	"github.com/tair/storefront/internal/catalog"
	"github.com/tair/storefront/internal/product/domain"
)

// UpdateStockCommand represents the command to update product stock
type UpdateStockCommand struct {
	ProductID string
	Quantity  int
}

// UpdateStockHandler handles stock update command
type UpdateStockHandler struct {
	catalog *catalog.Catalog
}

// NewUpdateStockHandler creates a new update stock handler
func NewUpdateStockHandler(c *catalog.Catalog) *UpdateStockHandler {
	return &UpdateStockHandler{catalog: c}
}

// Handle executes the update stock command. Setting zero stock deactivates the product;
// a restock does not reactivate it.
func (h *UpdateStockHandler) Handle(cmd UpdateStockCommand) (*domain.Product, error) {
	product, err := h.catalog.Get(cmd.ProductID)
	if err != nil {
		return nil, err
	}

	if err := product.SetQuantity(cmd.Quantity); err != nil {
		return nil, err
	}

	return product, nil
}
