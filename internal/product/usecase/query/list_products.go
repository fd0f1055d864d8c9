package query

import (
	"github.com/tair/storefront/internal/catalog"
	"github.com/tair/storefront/internal/product/domain"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	ActiveOnly  bool // only products that can currently be bought
	SortByPrice bool // ascending price instead of insertion order
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	catalog *catalog.Catalog
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(c *catalog.Catalog) *ListProductsHandler {
	return &ListProductsHandler{catalog: c}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(query ListProductsQuery) []*domain.Product {
	var products []*domain.Product
	if query.ActiveOnly {
		products = h.catalog.ActiveProducts()
	} else {
		products = h.catalog.Products()
	}

	if query.SortByPrice {
		domain.SortByPrice(products)
	}

	return products
}
