package command

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/storefront/internal/catalog"
	"github.com/tair/storefront/internal/product/domain"
)

// PromotionSpec describes a promotion to create and attach
type PromotionSpec struct {
	Kind    domain.PromotionKind
	Name    string
	Percent decimal.Decimal
}

// Build creates the described promotion
func (s PromotionSpec) Build() (domain.Promotion, error) {
	return domain.NewPromotion(s.Kind, s.Name, s.Percent)
}

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name      string
	Kind      domain.Kind
	Price     decimal.Decimal
	Quantity  int
	Maximum   int
	Promotion *PromotionSpec
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	catalog *catalog.Catalog
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(c *catalog.Catalog) *CreateProductHandler {
	return &CreateProductHandler{catalog: c}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	product, err := domain.NewProductOfKind(cmd.Kind, cmd.Name, cmd.Price, cmd.Quantity, cmd.Maximum)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if cmd.Promotion != nil {
		promo, err := cmd.Promotion.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to create promotion: %w", err)
		}
		product.SetPromotion(promo)
	}

	h.catalog.Add(product)
	return product, nil
}
