package order

import (
	"time"

	"steelorders/internal/core/domain/model/kernel"
)

const (
	EventCreated   = "order.created"
	EventUpdated   = "order.updated"
	EventDeleted   = "order.deleted"
	EventFinalized = "order.finalized"
	EventCompleted = "order.completed"
)

// Event is a lifecycle fact recorded by Order. It is serialised as-is
// into the outbox, so the field set is part of the published contract.
type Event struct {
	Type             string    `json:"type"`
	OrderID          string    `json:"orderId"`
	OrderNumber      string    `json:"orderNumber"`
	OwnerID          string    `json:"ownerId"`
	Status           string    `json:"status"`
	Priority         int       `json:"priority"`
	DispatchQuantity *int      `json:"dispatchQuantity,omitempty"`
	OccurredAt       time.Time `json:"occurredAt"`
}

func (e Event) EventType() string {
	return e.Type
}

func (e Event) OccurredOn() time.Time {
	return e.OccurredAt
}

var _ kernel.DomainEvent = Event{}
