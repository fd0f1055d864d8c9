package command

import (
	"fmt"

	"github.com/tair/storefront/internal/catalog"
	"github.com/tair/storefront/internal/product/domain"
)

// AttachPromotionCommand sets the promotion of a product. A nil Promotion removes it.
type AttachPromotionCommand struct {
	ProductID string
	Promotion *PromotionSpec
}

// AttachPromotionHandler handles the attach promotion command
type AttachPromotionHandler struct {
	catalog *catalog.Catalog
}

func NewAttachPromotionHandler(c *catalog.Catalog) *AttachPromotionHandler {
	return &AttachPromotionHandler{catalog: c}
}

// Handle executes the attach promotion command
func (h *AttachPromotionHandler) Handle(cmd AttachPromotionCommand) (*domain.Product, error) {
	product, err := h.catalog.Get(cmd.ProductID)
	if err != nil {
		return nil, err
	}

	if cmd.Promotion == nil {
		product.SetPromotion(nil)
		return product, nil
	}

	promo, err := cmd.Promotion.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}
	product.SetPromotion(promo)

	return product, nil
}
