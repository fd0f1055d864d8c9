package command

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tair/storefront/internal/catalog"
	"github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/logger"
)

// OrderLine asks for quantity units of the product with ProductID
type OrderLine struct {
	ProductID string
	Quantity  int
}

// PlaceOrderCommand represents the command to buy a basket of products
type PlaceOrderCommand struct {
	Lines []OrderLine
}

// PurchasePublisher announces bought order lines
type PurchasePublisher interface {
	PublishProductPurchased(ctx context.Context, event kafka.ProductPurchasedEvent) error
}

// PlaceOrderHandler handles the place order command
type PlaceOrderHandler struct {
	catalog   *catalog.Catalog
	publisher PurchasePublisher
}

// NewPlaceOrderHandler creates a new place order handler. publisher may be nil.
func NewPlaceOrderHandler(c *catalog.Catalog, publisher PurchasePublisher) *PlaceOrderHandler {
	return &PlaceOrderHandler{catalog: c, publisher: publisher}
}

// Handle resolves every line against the catalog and checks the basket out.
// Unknown products and failed purchases are reported on the receipt; they never fail the order.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) *catalog.Receipt {
	ctx, span := otel.Tracer("storefront").Start(ctx, "order.Place")
	defer span.End()

	items := make([]catalog.LineItem, 0, len(cmd.Lines))
	for _, line := range cmd.Lines {
		product, ok := h.catalog.Find(line.ProductID)
		if !ok {
			items = append(items, catalog.LineItem{
				Quantity: line.Quantity,
				Label:    line.ProductID,
				Err:      fmt.Errorf("%w: %s", domain.ErrNotFound, line.ProductID),
			})
			continue
		}
		items = append(items, catalog.Line(product, line.Quantity))
	}

	receipt := h.catalog.Checkout(ctx, items)
	failed := len(receipt.Failures())

	span.SetAttributes(
		attribute.String("order.id", receipt.ID),
		attribute.Int("order.lines", len(receipt.Lines)),
		attribute.Int("order.failed_lines", failed),
		attribute.String("order.total", receipt.Total.StringFixed(2)),
	)
	if failed > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d of %d lines failed", failed, len(receipt.Lines)))
	} else {
		span.SetStatus(codes.Ok, "Order placed")
	}

	h.publish(ctx, receipt)

	logger.Info(ctx).
		Str("order_id", receipt.ID).
		Int("lines", len(receipt.Lines)).
		Int("failed", failed).
		Str("total", receipt.Total.StringFixed(2)).
		Msg("Order placed")

	return receipt
}

func (h *PlaceOrderHandler) publish(ctx context.Context, receipt *catalog.Receipt) {
	if h.publisher == nil {
		return
	}

	for _, line := range receipt.Succeeded() {
		event := kafka.ProductPurchasedEvent{
			OrderID:     receipt.ID,
			ProductID:   line.Product.ID(),
			ProductName: line.Product.Name(),
			Quantity:    line.Quantity,
			UnitPrice:   line.Product.Price(),
			Amount:      line.Amount,
		}
		if promo := line.Product.Promotion(); promo != nil {
			event.Promotion = promo.Name()
		}

		if err := h.publisher.PublishProductPurchased(ctx, event); err != nil {
			logger.Error(ctx).
				Err(err).
				Str("order_id", receipt.ID).
				Str("product_id", event.ProductID).
				Msg("Failed to publish purchase event")
		}
	}
}
