package query

import (
	"github.com/tair/storefront/internal/catalog"
	"github.com/tair/storefront/internal/product/domain"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID string
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	catalog *catalog.Catalog
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(c *catalog.Catalog) *GetProductHandler {
	return &GetProductHandler{catalog: c}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(query GetProductQuery) (*domain.Product, error) {
	return h.catalog.Get(query.ID)
}
