package command

import (
	"fmt"

	"github.com/tair/storefront/internal/catalog"
	"github.com/tair/storefront/internal/product/domain"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID string
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	catalog *catalog.Catalog
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(c *catalog.Catalog) *DeleteProductHandler {
	return &DeleteProductHandler{catalog: c}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	product, err := h.catalog.Get(cmd.ID)
	if err != nil {
		return err
	}

	// Lost a race with a concurrent delete
	if !h.catalog.Remove(product) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, cmd.ID)
	}

	return nil
}
