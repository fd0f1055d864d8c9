package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog"
	"github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/kafka"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.ProductPurchasedEvent
	err    error
}

func (p *recordingPublisher) PublishProductPurchased(_ context.Context, event kafka.ProductPurchasedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func newCatalog(t *testing.T) (*catalog.Catalog, *domain.Product, *domain.Product) {
	t.Helper()
	macbook, err := domain.NewProduct("MacBook", decimal.NewFromInt(1450), 100)
	require.NoError(t, err)
	pixel, err := domain.NewProduct("Google Pixel", decimal.NewFromInt(500), 2)
	require.NoError(t, err)
	return catalog.New(macbook, pixel), macbook, pixel
}

func TestPlaceOrder(t *testing.T) {
	c, macbook, pixel := newCatalog(t)
	publisher := &recordingPublisher{}
	handler := NewPlaceOrderHandler(c, publisher)

	receipt := handler.Handle(context.Background(), PlaceOrderCommand{Lines: []OrderLine{
		{ProductID: macbook.ID(), Quantity: 2},
		{ProductID: "missing", Quantity: 1},
		{ProductID: pixel.ID(), Quantity: 3},
		{ProductID: pixel.ID(), Quantity: 1},
	}})

	assert.True(t, decimal.NewFromInt(3400).Equal(receipt.Total), "got %s", receipt.Total)
	require.Len(t, receipt.Lines, 4)

	failures := receipt.Failures()
	require.Len(t, failures, 2)
	assert.ErrorIs(t, failures[0].Err, domain.ErrNotFound)
	assert.Equal(t, "missing", failures[0].ProductName())
	assert.ErrorIs(t, failures[1].Err, domain.ErrInsufficientStock)

	assert.Equal(t, 98, macbook.Quantity())
	assert.Equal(t, 1, pixel.Quantity())

	require.Len(t, publisher.events, 2)
	assert.Equal(t, receipt.ID, publisher.events[0].OrderID)
	assert.Equal(t, macbook.ID(), publisher.events[0].ProductID)
	assert.Equal(t, 2, publisher.events[0].Quantity)
	assert.True(t, decimal.NewFromInt(2900).Equal(publisher.events[0].Amount))
	assert.Equal(t, "Google Pixel", publisher.events[1].ProductName)
}

func TestPlaceOrderIgnoresPublishErrors(t *testing.T) {
	c, macbook, _ := newCatalog(t)
	half, err := domain.NewSecondHalfPrice("Second Half price!")
	require.NoError(t, err)
	macbook.SetPromotion(half)

	publisher := &recordingPublisher{err: errors.New("broker down")}
	receipt := NewPlaceOrderHandler(c, publisher).Handle(context.Background(), PlaceOrderCommand{
		Lines: []OrderLine{{ProductID: macbook.ID(), Quantity: 2}},
	})

	assert.True(t, decimal.NewFromInt(2175).Equal(receipt.Total), "got %s", receipt.Total)
	assert.Empty(t, receipt.Failures())
	require.Len(t, publisher.events, 1)
	assert.Equal(t, "Second Half price!", publisher.events[0].Promotion)
}

func TestPlaceOrderWithoutPublisher(t *testing.T) {
	c, macbook, _ := newCatalog(t)
	receipt := NewPlaceOrderHandler(c, nil).Handle(context.Background(), PlaceOrderCommand{
		Lines: []OrderLine{{ProductID: macbook.ID(), Quantity: 1}},
	})
	assert.True(t, decimal.NewFromInt(1450).Equal(receipt.Total))

	empty := NewPlaceOrderHandler(c, nil).Handle(context.Background(), PlaceOrderCommand{})
	assert.True(t, empty.Total.IsZero())
	assert.Empty(t, empty.Lines)
}

func TestCreateProduct(t *testing.T) {
	c := catalog.New()
	handler := NewCreateProductHandler(c)

	product, err := handler.Handle(CreateProductCommand{
		Name:  "Windows License",
		Kind:  domain.KindUnlimited,
		Price: decimal.NewFromInt(125),
		Promotion: &PromotionSpec{
			Kind:    domain.PromotionPercentOff,
			Name:    "30% off!",
			Percent: decimal.NewFromInt(30),
		},
	})
	require.NoError(t, err)
	assert.True(t, c.Contains(product))
	assert.Equal(t, domain.KindUnlimited, product.Kind())
	assert.True(t, product.IsActive())
	require.NotNil(t, product.Promotion())
	assert.Equal(t, "30% off!", product.Promotion().Name())

	tests := []struct {
		name string
		cmd  CreateProductCommand
	}{
		{"empty name", CreateProductCommand{Price: decimal.NewFromInt(1)}},
		{"negative price", CreateProductCommand{Name: "x", Price: decimal.NewFromInt(-1)}},
		{"negative quantity", CreateProductCommand{Name: "x", Quantity: -1}},
		{"unknown kind", CreateProductCommand{Name: "x", Kind: "rental"}},
		{"capped without maximum", CreateProductCommand{Name: "x", Kind: domain.KindCapped, Quantity: 1}},
		{"bad promotion", CreateProductCommand{Name: "x", Promotion: &PromotionSpec{Kind: domain.PromotionPercentOff, Name: "p", Percent: decimal.NewFromInt(120)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(tt.cmd)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Equal(t, 1, c.Len())
}

func TestDeleteProduct(t *testing.T) {
	c, macbook, _ := newCatalog(t)
	handler := NewDeleteProductHandler(c)

	require.NoError(t, handler.Handle(DeleteProductCommand{ID: macbook.ID()}))
	assert.False(t, c.Contains(macbook))
	assert.Equal(t, 1, c.Len())

	err := handler.Handle(DeleteProductCommand{ID: macbook.ID()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStock(t *testing.T) {
	c, _, pixel := newCatalog(t)
	handler := NewUpdateStockHandler(c)

	product, err := handler.Handle(UpdateStockCommand{ProductID: pixel.ID(), Quantity: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, product.Quantity())
	assert.False(t, product.IsActive())

	product, err = handler.Handle(UpdateStockCommand{ProductID: pixel.ID(), Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, product.Quantity())
	assert.False(t, product.IsActive(), "restocking must not reactivate")

	_, err = handler.Handle(UpdateStockCommand{ProductID: pixel.ID(), Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = handler.Handle(UpdateStockCommand{ProductID: "missing", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProduct(t *testing.T) {
	c, macbook, _ := newCatalog(t)
	handler := NewUpdateProductHandler(c)

	price := decimal.RequireFromString("1299.99")
	inactive := false
	product, err := handler.Handle(UpdateProductCommand{ProductID: macbook.ID(), Price: &price, IsActive: &inactive})
	require.NoError(t, err)
	assert.True(t, price.Equal(product.Price()))
	assert.False(t, product.IsActive())

	active := true
	product, err = handler.Handle(UpdateProductCommand{ProductID: macbook.ID(), IsActive: &active})
	require.NoError(t, err)
	assert.True(t, product.IsActive())
	assert.True(t, price.Equal(product.Price()))

	negative := decimal.NewFromInt(-5)
	_, err = handler.Handle(UpdateProductCommand{ProductID: macbook.ID(), Price: &negative})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.True(t, price.Equal(macbook.Price()))

	_, err = handler.Handle(UpdateProductCommand{ProductID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttachPromotion(t *testing.T) {
	c, _, pixel := newCatalog(t)
	handler := NewAttachPromotionHandler(c)

	product, err := handler.Handle(AttachPromotionCommand{
		ProductID: pixel.ID(),
		Promotion: &PromotionSpec{Kind: domain.PromotionThirdOneFree, Name: "Third One Free!"},
	})
	require.NoError(t, err)
	require.NotNil(t, product.Promotion())
	assert.Equal(t, domain.PromotionThirdOneFree, product.Promotion().Kind())

	_, err = handler.Handle(AttachPromotionCommand{
		ProductID: pixel.ID(),
		Promotion: &PromotionSpec{Kind: "bogo", Name: "Buy one"},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotNil(t, pixel.Promotion(), "failed attach keeps the previous promotion")

	product, err = handler.Handle(AttachPromotionCommand{ProductID: pixel.ID()})
	require.NoError(t, err)
	assert.Nil(t, product.Promotion())

	_, err = handler.Handle(AttachPromotionCommand{ProductID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
