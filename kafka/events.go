package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductPurchasedEvent is emitted for every order line that was bought
type ProductPurchasedEvent struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	OrderID     string          `json:"order_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	Promotion   string          `json:"promotion,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Event types
const (
	EventTypeProductPurchased = "product.purchased"
)

// Kafka topics
const (
	TopicProductPurchased = "product-purchased"
)
