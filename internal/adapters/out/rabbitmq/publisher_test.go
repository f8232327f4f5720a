package rabbitmq_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"steelorders/internal/adapters/out/rabbitmq"
	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockConnection struct {
	mock.Mock
}

func (m *MockConnection) Channel() (rabbitmq.Channel, error) {
	args := m.Called()
	if ch := args.Get(0); ch != nil {
		return ch.(rabbitmq.Channel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConnection) Close() error {
	return m.Called().Error(0)
}

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return m.Called(name, kind, durable, autoDelete, internal, noWait, args).Error(0)
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

func newMessage(eventType string) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:          kernel.NewUUID(),
		EventType:   eventType,
		AggregateID: kernel.NewUUID(),
		Payload:     []byte(`{"type":"` + eventType + `"}`),
		OccurredAt:  time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC),
	}
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "orders.created", rabbitmq.RoutingKey("order.created"))
	assert.Equal(t, "orders.completed", rabbitmq.RoutingKey("order.completed"))
	assert.Equal(t, "orders.custom", rabbitmq.RoutingKey("custom"))
}

func TestPublisher_PublishDeclaresExchangeOnce(t *testing.T) {
	ctx := t.Context()
	ch := &MockChannel{}
	conn := &MockConnection{}
	conn.On("Channel").Return(ch, nil).Once()
	ch.On("ExchangeDeclare", "orders_topic", "topic", true, false, false, false, amqp.Table(nil)).Return(nil).Once()

	first := newMessage("order.created")
	second := newMessage("order.finalized")
	ch.On("PublishWithContext", ctx, "orders_topic", "orders.created", false, false,
		mock.MatchedBy(func(msg amqp.Publishing) bool {
			return msg.MessageId == first.ID.String() &&
				msg.DeliveryMode == amqp.Persistent &&
				msg.ContentType == "application/json" &&
				msg.Type == "order.created" &&
				string(msg.Body) == string(first.Payload)
		})).Return(nil).Once()
	ch.On("PublishWithContext", ctx, "orders_topic", "orders.finalized", false, false, mock.Anything).Return(nil).Once()

	publisher := rabbitmq.NewPublisher(conn, "")
	require.NoError(t, publisher.Publish(ctx, first))
	require.NoError(t, publisher.Publish(ctx, second))

	conn.AssertExpectations(t)
	ch.AssertExpectations(t)
}

func TestPublisher_ReopensChannelAfterFailure(t *testing.T) {
	ctx := t.Context()
	broken := &MockChannel{}
	healthy := &MockChannel{}
	conn := &MockConnection{}
	conn.On("Channel").Return(broken, nil).Once()
	conn.On("Channel").Return(healthy, nil).Once()

	broken.On("ExchangeDeclare", "steel", "topic", true, false, false, false, amqp.Table(nil)).Return(nil)
	broken.On("PublishWithContext", ctx, "steel", "orders.completed", false, false, mock.Anything).
		Return(errors.New("channel closed"))
	broken.On("Close").Return(nil).Once()
	healthy.On("ExchangeDeclare", "steel", "topic", true, false, false, false, amqp.Table(nil)).Return(nil)
	healthy.On("PublishWithContext", ctx, "steel", "orders.completed", false, false, mock.Anything).Return(nil)

	publisher := rabbitmq.NewPublisher(conn, "steel")
	message := newMessage("order.completed")

	err := publisher.Publish(ctx, message)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")

	require.NoError(t, publisher.Publish(ctx, message))

	conn.AssertExpectations(t)
	broken.AssertExpectations(t)
	healthy.AssertExpectations(t)
}

func TestPublisher_ExchangeDeclareFailure(t *testing.T) {
	ch := &MockChannel{}
	conn := &MockConnection{}
	conn.On("Channel").Return(ch, nil)
	ch.On("ExchangeDeclare", "orders_topic", "topic", true, false, false, false, amqp.Table(nil)).
		Return(errors.New("access refused"))
	ch.On("Close").Return(nil)

	err := rabbitmq.NewPublisher(conn, "").Publish(t.Context(), newMessage("order.created"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to declare exchange")
	ch.AssertNotCalled(t, "PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPublisher_CloseReleasesConnection(t *testing.T) {
	ch := &MockChannel{}
	conn := &MockConnection{}
	conn.On("Channel").Return(ch, nil)
	conn.On("Close").Return(nil).Once()
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ch.On("Close").Return(nil).Once()

	publisher := rabbitmq.NewPublisher(conn, "")
	require.NoError(t, publisher.Publish(t.Context(), newMessage("order.deleted")))
	require.NoError(t, publisher.Close())

	conn.AssertExpectations(t)
	ch.AssertExpectations(t)
}
