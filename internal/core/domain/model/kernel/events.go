package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate while it changes state.
// EventType is used as the routing suffix when the event leaves the service.
type DomainEvent interface {
	EventType() string
	OccurredOn() time.Time
}

// EventSource is implemented by aggregates that record domain events.
// The unit of work drains the events of every tracked aggregate before committing.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
