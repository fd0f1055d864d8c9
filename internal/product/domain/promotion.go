package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PromotionKind enumerates the supported pricing rules
type PromotionKind string

const (
	PromotionPercentOff      PromotionKind = "percent_off"
	PromotionSecondHalfPrice PromotionKind = "second_half_price"
	PromotionThirdOneFree    PromotionKind = "third_one_free"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// Promotion is a stateless pricing rule. Apply returns the charged total for
// quantity units at unitPrice and never mutates anything; quantity is always > 0.
type Promotion interface {
	Name() string
	Kind() PromotionKind
	Apply(unitPrice decimal.Decimal, quantity int) decimal.Decimal
}

// NewPromotion builds a promotion of the given kind. percent is only read for percent_off.
func NewPromotion(kind PromotionKind, name string, percent decimal.Decimal) (Promotion, error) {
	switch kind {
	case PromotionPercentOff:
		return NewPercentOff(name, percent)
	case PromotionSecondHalfPrice:
		return NewSecondHalfPrice(name)
	case PromotionThirdOneFree:
		return NewThirdOneFree(name)
	default:
		return nil, newValidationError("promotion kind", fmt.Sprintf("unknown kind %q", kind))
	}
}

func validatePromotionName(name string) error {
	if strings.TrimSpace(name) == "" {
		return newValidationError("promotion name", "must be a non empty string")
	}
	return nil
}

// PercentOff takes a fixed percentage off the line total
type PercentOff struct {
	name    string
	percent decimal.Decimal
}

// NewPercentOff creates a percentage discount; percent must be within [0, 100]
func NewPercentOff(name string, percent decimal.Decimal) (*PercentOff, error) {
	if err := validatePromotionName(name); err != nil {
		return nil, err
	}
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return nil, newValidationError("percent", "must be between 0 and 100")
	}
	return &PercentOff{name: name, percent: percent}, nil
}

func (p *PercentOff) Name() string { return p.name }
func (p *PercentOff) Kind() PromotionKind { return PromotionPercentOff }
func (p *PercentOff) Percent() decimal.Decimal { return p.percent }

func (p *PercentOff) Apply(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return total.Mul(hundred.Sub(p.percent)).Div(hundred)
}

// SecondHalfPrice charges every second unit at half price
type SecondHalfPrice struct {
	name string
}

func NewSecondHalfPrice(name string) (*SecondHalfPrice, error) {
	if err := validatePromotionName(name); err != nil {
		return nil, err
	}
	return &SecondHalfPrice{name: name}, nil
}

func (p *SecondHalfPrice) Name() string { return p.name }
func (p *SecondHalfPrice) Kind() PromotionKind { return PromotionSecondHalfPrice }

func (p *SecondHalfPrice) Apply(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	fullPriced := decimal.NewFromInt(int64((quantity + 1) / 2))
	halfPriced := decimal.NewFromInt(int64(quantity / 2))
	return unitPrice.Mul(fullPriced).Add(unitPrice.Mul(half).Mul(halfPriced))
}

// ThirdOneFree gives away one unit out of every three
type ThirdOneFree struct {
	name string
}

func NewThirdOneFree(name string) (*ThirdOneFree, error) {
	if err := validatePromotionName(name); err != nil {
		return nil, err
	}
	return &ThirdOneFree{name: name}, nil
}

func (p *ThirdOneFree) Name() string { return p.name }
func (p *ThirdOneFree) Kind() PromotionKind { return PromotionThirdOneFree }

func (p *ThirdOneFree) Apply(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	paid := quantity - quantity/3
	return unitPrice.Mul(decimal.NewFromInt(int64(paid)))
}
