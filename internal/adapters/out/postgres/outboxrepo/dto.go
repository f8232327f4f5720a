// Package outboxrepo stores domain events waiting to be relayed.
package outboxrepo

import (
	"time"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxMessageDTO is the row of the outbox_messages table.
type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType   string     `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromPort(m ports.OutboxMessage) OutboxMessageDTO {
	return OutboxMessageDTO{
		ID:          m.ID.Google(),
		EventType:   m.EventType,
		AggregateID: m.AggregateID.Google(),
		Payload:     m.Payload,
		OccurredAt:  m.OccurredAt,
		PublishedAt: m.PublishedAt,
	}
}

func toPort(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		EventType:   dto.EventType,
		AggregateID: aggregateID,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt.UTC(),
		PublishedAt: dto.PublishedAt,
	}, nil
}
