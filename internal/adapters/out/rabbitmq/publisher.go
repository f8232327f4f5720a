package rabbitmq

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"steelorders/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "orders_topic"
	routingPrefix   = "orders."
)

// Publisher implements ports.EventPublisher. It keeps one channel open and
// reopens it after a failed publish.
type Publisher struct {
	conn     Connection
	exchange string

	mu sync.Mutex
	ch Channel
}

var _ ports.EventPublisher = (*Publisher)(nil)

func NewPublisher(conn Connection, exchange string) *Publisher {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Publisher{conn: conn, exchange: exchange}
}

// RoutingKey maps "order.finalized" to "orders.finalized".
func RoutingKey(eventType string) string {
	_, name, found := strings.Cut(eventType, ".")
	if !found {
		name = eventType
	}
	return routingPrefix + name
}

func (p *Publisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, p.exchange, RoutingKey(message.EventType), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    message.ID.String(),
		Type:         message.EventType,
		Timestamp:    message.OccurredAt,
		Body:         message.Payload,
	})
	if err != nil {
		p.reset()
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reset()
	return p.conn.Close()
}

func (p *Publisher) channel() (Channel, error) {
	if p.ch != nil {
		return p.ch, nil
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	p.ch = ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
}
