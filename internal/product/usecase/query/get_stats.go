package query

import (
	"github.com/shopspring/decimal"

	"github.com/tair/storefront/internal/catalog"
)

// GetStatsQuery represents the query to get catalog statistics
type GetStatsQuery struct{}

// CatalogStats represents catalog statistics
type CatalogStats struct {
	TotalProducts  int             `json:"total_products"`
	ActiveProducts int             `json:"active_products"`
	TotalQuantity  int             `json:"total_quantity"`
	AveragePrice   decimal.Decimal `json:"average_price"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	catalog *catalog.Catalog
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(c *catalog.Catalog) *GetStatsHandler {
	return &GetStatsHandler{catalog: c}
}

// Handle executes the get stats query. TotalQuantity counts inactive products too.
func (h *GetStatsHandler) Handle(query GetStatsQuery) *CatalogStats {
	products := h.catalog.Products()

	stats := &CatalogStats{
		TotalProducts: len(products),
		AveragePrice:  decimal.Zero,
	}

	totalPrice := decimal.Zero
	for _, product := range products {
		if product.IsActive() {
			stats.ActiveProducts++
		}
		stats.TotalQuantity += product.Quantity()
		totalPrice = totalPrice.Add(product.Price())
	}

	if len(products) > 0 {
		stats.AveragePrice = totalPrice.Div(decimal.NewFromInt(int64(len(products)))).Round(2)
	}

	return stats
}
