package domain

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind selects the purchase eligibility policy of a product
type Kind string

const (
	KindStandard  Kind = "standard"  // finite tracked stock
	KindUnlimited Kind = "unlimited" // stock is not tracked
	KindCapped    Kind = "capped"    // tracked stock plus a per-order maximum
)

// Product represents the product entity.
//
// A product is Active while it can be bought. It becomes Inactive the moment its
// stock reaches zero or when Deactivate is called, and only Activate brings it back.
// Buy is a single critical section, so concurrent orders cannot oversell stock.
type Product struct {
	mu sync.Mutex

	id        string
	name      string
	price     decimal.Decimal
	quantity  int
	active    bool
	kind      Kind
	maximum   int
	promotion Promotion
}

// NewProduct creates a standard product with tracked stock
func NewProduct(name string, price decimal.Decimal, quantity int) (*Product, error) {
	return newProduct(KindStandard, name, price, quantity, 0)
}

// NewUnlimitedProduct creates a product whose stock is never tracked
func NewUnlimitedProduct(name string, price decimal.Decimal) (*Product, error) {
	return newProduct(KindUnlimited, name, price, 0, 0)
}

// NewCappedProduct creates a product that limits how many units one purchase may take
func NewCappedProduct(name string, price decimal.Decimal, quantity, maximum int) (*Product, error) {
	if maximum < 1 {
		return nil, newValidationError("maximum", "must be a positive integer")
	}
	return newProduct(KindCapped, name, price, quantity, maximum)
}

// NewProductOfKind dispatches to the constructor of kind; an empty kind means standard.
// quantity is ignored for unlimited products and maximum for everything but capped ones.
func NewProductOfKind(kind Kind, name string, price decimal.Decimal, quantity, maximum int) (*Product, error) {
	switch kind {
	case "", KindStandard:
		return NewProduct(name, price, quantity)
	case KindUnlimited:
		return NewUnlimitedProduct(name, price)
	case KindCapped:
		return NewCappedProduct(name, price, quantity, maximum)
	default:
		return nil, newValidationError("kind", fmt.Sprintf("unknown product kind %q", kind))
	}
}

func newProduct(kind Kind, name string, price decimal.Decimal, quantity, maximum int) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, newValidationError("name", "must be a non empty string")
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	return &Product{
		id:       uuid.NewString(),
		name:     name,
		price:    price,
		quantity: quantity,
		active:   kind == KindUnlimited || quantity > 0,
		kind:     kind,
		maximum:  maximum,
	}, nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return newValidationError("price", "must be a non negative number")
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return newValidationError("quantity", "must be a non negative integer")
	}
	return nil
}

func (p *Product) ID() string {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Kind() Kind {
	return p.kind
}

// Maximum returns the per-order limit of a capped product, 0 otherwise
func (p *Product) Maximum() int {
	return p.maximum
}

func (p *Product) Price() decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.price
}

// SetPrice changes the unit price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.price = price
	return nil
}

// Quantity returns the remaining stock; always 0 for unlimited products
func (p *Product) Quantity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.quantity
}

// SetQuantity replaces the stock level, deactivating the product at zero
func (p *Product) SetQuantity(quantity int) error {
	if p.kind == KindUnlimited {
		return newValidationError("quantity", "stock is not tracked for unlimited products")
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.setQuantityLocked(quantity)
	return nil
}

func (p *Product) setQuantityLocked(quantity int) {
	p.quantity = quantity
	if p.quantity == 0 {
		p.active = false
	}
}

func (p *Product) IsActive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *Product) Activate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = true
}

func (p *Product) Deactivate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = false
}

// Promotion returns the attached promotion or nil
func (p *Product) Promotion() Promotion {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.promotion
}

// SetPromotion attaches a promotion; nil removes the current one.
// The same promotion may be shared by many products.
func (p *Product) SetPromotion(promotion Promotion) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.promotion = promotion
}

// Buy purchases quantity units and returns the charged total.
// On any error nothing is changed.
func (p *Product) Buy(quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, newValidationError("quantity", "must be a positive integer")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active {
		return decimal.Zero, &PurchaseError{ProductName: p.name, Requested: quantity, Err: ErrInactiveProduct}
	}

	switch p.kind {
	case KindCapped:
		if quantity > p.maximum {
			return decimal.Zero, &PurchaseError{ProductName: p.name, Requested: quantity, Limit: p.maximum, Err: ErrPurchaseLimitExceeded}
		}
		fallthrough
	case KindStandard:
		if quantity > p.quantity {
			return decimal.Zero, &PurchaseError{ProductName: p.name, Requested: quantity, Available: p.quantity, Err: ErrInsufficientStock}
		}
	}

	total := p.price.Mul(decimal.NewFromInt(int64(quantity)))
	if p.promotion != nil {
		total = p.promotion.Apply(p.price, quantity)
	}

	if p.kind != KindUnlimited {
		p.setQuantityLocked(p.quantity - quantity)
	}

	return total, nil
}

// String renders the product for menus and logs
func (p *Product) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "%s, Price: $%s", p.name, p.price.StringFixed(2))
	if p.kind != KindUnlimited {
		fmt.Fprintf(&b, ", Quantity: %d", p.quantity)
	}
	if p.promotion != nil {
		fmt.Fprintf(&b, ", Promotion: %s", p.promotion.Name())
	}
	if p.kind == KindCapped {
		fmt.Fprintf(&b, ", Maximum per purchase: %d", p.maximum)
	}
	return b.String()
}

// Less orders products by price only
func (p *Product) Less(other *Product) bool {
	return p.Price().LessThan(other.Price())
}

// SortByPrice sorts products by ascending price, keeping the order of equal prices
func SortByPrice(products []*Product) {
	slices.SortStableFunc(products, func(a, b *Product) int {
		return a.Price().Cmp(b.Price())
	})
}
