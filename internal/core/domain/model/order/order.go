package order

import (
	"errors"
	"fmt"
	"time"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is a request for steel material raised by a USER and fulfilled by operations.
// It is the aggregate root and the only place where status and the completion
// fields change.
//
// Order follows these invariants:
//   - id, number, owner and createdAt are fixed at creation
//   - status only moves forward (see Status)
//   - details change only while DRAFT
//   - dispatchQuantity and completionNotes are set if and only if the order is COMPLETED
//   - updatedAt moves on every mutation
type Order struct {
	id      kernel.UUID
	number  Number
	ownerID kernel.UUID
	details Details
	status  Status

	// dispatchQuantity and completionNotes are nil until completion
	dispatchQuantity *int
	completionNotes  *string

	createdAt time.Time
	updatedAt time.Time

	events        []kernel.DomainEvent
	isConstructed bool
}

// NewOrder creates a DRAFT order owned by ownerID.
//
// Example:
//
//	number, _ := order.NewNumber(2026, 1)
//	o, err := order.NewOrder(kernel.NewUUID(), number, actor.ID(), details, time.Now())
//	if err != nil {
//	    // details violated a business rule
//	}
func NewOrder(id kernel.UUID, number Number, ownerID kernel.UUID, details Details, now time.Time) (*Order, error) {
	o := &Order{
		status:        Draft,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setOwner(ownerID),
		details.Validate(),
	); err != nil {
		return nil, err
	}
	o.details = details

	o.record(EventCreated, now)
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state without recording events.
// It re-checks the invariants so corrupted rows surface as errors.
func RestoreOrder(
	id kernel.UUID,
	number Number,
	ownerID kernel.UUID,
	details Details,
	status Status,
	dispatchQuantity *int,
	completionNotes *string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		details:          details,
		dispatchQuantity: dispatchQuantity,
		completionNotes:  completionNotes,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setOwner(ownerID),
		details.Validate(),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() Number {
	return o.number
}

// OwnerID returns the id of the USER who created the order.
func (o *Order) OwnerID() kernel.UUID {
	return o.ownerID
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) Status() Status {
	return o.status
}

// DispatchQuantity is nil until the order is completed.
func (o *Order) DispatchQuantity() *int {
	return o.dispatchQuantity
}

// CompletionNotes is nil until the order is completed.
func (o *Order) CompletionNotes() *string {
	return o.completionNotes
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsOwnedBy reports whether userID created the order.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.ownerID.IsEqual(userID)
}

// Edit replaces the draft details.
//
// Returns:
//   - StateIsInvalidError if the order is not DRAFT
//   - validation errors if details break a rule; the order is left untouched
func (o *Order) Edit(details Details, now time.Time) error {
	if err := o.status.ValidateEditable("edited"); err != nil {
		return err
	}
	if err := details.Validate(); err != nil {
		return err
	}

	o.details = details
	o.touch(now)
	o.record(EventUpdated, now)
	return nil
}

// MarkDeleted checks that the order may be removed and records the deletion.
// Removing the row is the repository's job.
func (o *Order) MarkDeleted(now time.Time) error {
	if err := o.status.ValidateEditable("deleted"); err != nil {
		return err
	}

	o.record(EventDeleted, now)
	return nil
}

// Finalize hands the draft over to operations (DRAFT -> FINALIZED).
// Calling it again on a finalized order fails and changes nothing.
func (o *Order) Finalize(now time.Time) error {
	newStatus, err := o.status.Finalize()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	o.record(EventFinalized, now)
	return nil
}

// Complete records the fulfilment (FINALIZED -> COMPLETED).
//
// dispatchQuantity is stored verbatim: it may be lower or higher than the ordered
// quantity. Only negative values are rejected.
func (o *Order) Complete(dispatchQuantity int, completionNotes string, now time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}
	if dispatchQuantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"dispatchQuantity",
			fmt.Errorf("%d is negative", dispatchQuantity),
		)
	}

	o.status = newStatus
	o.dispatchQuantity = &dispatchQuantity
	o.completionNotes = &completionNotes
	o.touch(now)
	o.record(EventCompleted, now)
	return nil
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	return o.events
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) touch(now time.Time) {
	if now.After(o.updatedAt) {
		o.updatedAt = now
	}
}

func (o *Order) record(eventType string, now time.Time) {
	o.events = append(o.events, Event{
		Type:             eventType,
		OrderID:          o.id.String(),
		OrderNumber:      o.number.String(),
		OwnerID:          o.ownerID.String(),
		Status:           o.status.String(),
		Priority:         o.details.Priority,
		DispatchQuantity: o.dispatchQuantity,
		OccurredAt:       now,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number Number) error {
	if _, err := ParseNumber(number.String()); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setOwner(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	o.ownerID = ownerID
	return nil
}

// setStatus validates status together with the completion fields.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	completed := o.dispatchQuantity != nil || o.completionNotes != nil
	if completed && status != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order cannot carry completion fields", status),
		)
	}
	if status == Completed && o.dispatchQuantity == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order must carry a dispatch quantity", status),
		)
	}

	o.status = status
	return nil
}
