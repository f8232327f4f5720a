package ports

import (
	"context"
	"time"

	"steelorders/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event stored in the same transaction as the change
// that produced it, waiting to be relayed to the message broker.
type OutboxMessage struct {
	ID          kernel.UUID
	EventType   string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredAt  time.Time
	PublishedAt *time.Time
}

// OutboxRepository stores and hands out pending outbox messages.
type OutboxRepository interface {
	// Add stores messages for later relay.
	Add(ctx context.Context, messages ...OutboxMessage) error

	// GetUnpublished locks up to limit pending messages, oldest first.
	// Rows locked by another relay are skipped.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps the messages as relayed.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers a relayed message to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, message OutboxMessage) error
}
