package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishProductPurchased(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var event ProductPurchasedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if event.EventType != EventTypeProductPurchased {
			return errors.New("event type not set")
		}
		if event.EventID == "" || event.Timestamp.IsZero() {
			return errors.New("event id and timestamp must be filled in")
		}
		if !event.Amount.Equal(decimal.NewFromInt(2175)) {
			return errors.New("unexpected amount " + event.Amount.String())
		}
		return nil
	})

	publisher := NewPublisherWithProducer(producer)
	err := publisher.PublishProductPurchased(context.Background(), ProductPurchasedEvent{
		OrderID:     "order-1",
		ProductID:   "product-1",
		ProductName: "MacBook",
		Quantity:    2,
		UnitPrice:   decimal.NewFromInt(1450),
		Amount:      decimal.NewFromInt(2175),
		Promotion:   "Second Half price!",
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Close())
}

func TestPublishProductPurchasedFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewPublisherWithProducer(producer)
	err := publisher.PublishProductPurchased(context.Background(), ProductPurchasedEvent{ProductID: "product-1", Quantity: 1})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func TestDispatch(t *testing.T) {
	consumer := &Consumer{handlers: make(map[string]EventHandler)}

	var got []ProductPurchasedEvent
	consumer.RegisterHandler(EventTypeProductPurchased, func(_ context.Context, event ProductPurchasedEvent) error {
		got = append(got, event)
		return nil
	})

	value, err := json.Marshal(ProductPurchasedEvent{EventID: "evt_1", ProductID: "product-1", Quantity: 3})
	require.NoError(t, err)

	message := &sarama.ConsumerMessage{
		Topic: TopicProductPurchased,
		Value: value,
		Headers: []*sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(EventTypeProductPurchased)},
			{Key: []byte("event_id"), Value: []byte("evt_1")},
		},
	}
	require.NoError(t, consumer.Dispatch(context.Background(), message))
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Quantity)

	t.Run("missing event type", func(t *testing.T) {
		assert.Error(t, consumer.Dispatch(context.Background(), &sarama.ConsumerMessage{Value: value}))
	})

	t.Run("unregistered event type", func(t *testing.T) {
		msg := &sarama.ConsumerMessage{
			Value:   value,
			Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte("product.refunded")}},
		}
		assert.Error(t, consumer.Dispatch(context.Background(), msg))
	})

	t.Run("malformed payload", func(t *testing.T) {
		msg := &sarama.ConsumerMessage{
			Value:   []byte("{"),
			Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(EventTypeProductPurchased)}},
		}
		assert.Error(t, consumer.Dispatch(context.Background(), msg))
	})

	t.Run("handler error", func(t *testing.T) {
		consumer.RegisterHandler(EventTypeProductPurchased, func(context.Context, ProductPurchasedEvent) error {
			return errors.New("boom")
		})
		assert.Error(t, consumer.Dispatch(context.Background(), message))
	})
}
