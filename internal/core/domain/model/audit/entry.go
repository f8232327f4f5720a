package audit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/pkg/errs"
)

// Entry records who did what, and to which order if any.
type Entry struct {
	id             kernel.UUID
	action         Action
	details        string
	actorID        kernel.UUID
	relatedOrderID *kernel.UUID
	createdAt      time.Time
}

// NewEntry creates an entry that is not tied to an order.
func NewEntry(action Action, details string, actorID kernel.UUID, now time.Time) (*Entry, error) {
	e := &Entry{
		id:        kernel.NewUUID(),
		action:    action,
		details:   details,
		createdAt: now,
	}

	if err := errors.Join(
		required("action", string(action)),
		required("details", details),
		e.setActor(actorID),
	); err != nil {
		return nil, err
	}
	return e, nil
}

// NewOrderEntry creates an entry about o. The details are derived from the
// action and the order number.
func NewOrderEntry(action Action, o *order.Order, actorID kernel.UUID, now time.Time) (*Entry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	e, err := NewEntry(action, orderDetails(action, o), actorID, now)
	if err != nil {
		return nil, err
	}
	orderID := o.ID()
	e.relatedOrderID = &orderID
	return e, nil
}

// RestoreEntry rebuilds a persisted entry.
func RestoreEntry(id kernel.UUID, action Action, details string, actorID kernel.UUID, relatedOrderID *kernel.UUID, createdAt time.Time) *Entry {
	return &Entry{
		id:             id,
		action:         action,
		details:        details,
		actorID:        actorID,
		relatedOrderID: relatedOrderID,
		createdAt:      createdAt,
	}
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) Action() Action {
	return e.action
}

func (e *Entry) Details() string {
	return e.details
}

func (e *Entry) ActorID() kernel.UUID {
	return e.actorID
}

// RelatedOrderID is nil for entries about users.
func (e *Entry) RelatedOrderID() *kernel.UUID {
	return e.relatedOrderID
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

func orderDetails(action Action, o *order.Order) string {
	number := o.Number().String()
	switch action {
	case OrderCreated:
		return fmt.Sprintf("Order %s created", number)
	case OrderUpdated:
		return fmt.Sprintf("Order %s updated", number)
	case OrderDeleted:
		return fmt.Sprintf("Order %s deleted", number)
	case OrderFinalized:
		return fmt.Sprintf("Order %s finalized", number)
	case OrderCompleted:
		if q := o.DispatchQuantity(); q != nil {
			return fmt.Sprintf("Order %s completed with dispatch quantity %d", number, *q)
		}
		return fmt.Sprintf("Order %s completed", number)
	default:
		return fmt.Sprintf("Order %s: %s", number, action)
	}
}

func (e *Entry) setActor(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorUserId", err)
	}
	e.actorID = actorID
	return nil
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
