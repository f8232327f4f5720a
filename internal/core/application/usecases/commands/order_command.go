package commands

import (
	"errors"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/pkg/errs"
	"steelorders/internal/pkg/guard"
)

var ErrOrderCommandIsNotConstructed = errors.New(
	"OrderCommand must be created via NewOrderCommand constructor",
)

// OrderCommand addresses an existing order on behalf of an actor. It is the
// input of the delete and finalize handlers, which need nothing else.
type OrderCommand struct { //nolint:recvcheck //using for validation
	actor   user.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewOrderCommand(actor user.Actor, orderID kernel.UUID) (OrderCommand, error) {
	cmd := OrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
	); err != nil {
		return OrderCommand{}, err
	}

	return cmd, nil
}

func (c OrderCommand) Validate() error {
	return c.guard.Validate(ErrOrderCommandIsNotConstructed)
}

func (c OrderCommand) Actor() user.Actor {
	return c.actor
}

func (c OrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *OrderCommand) setActor(actor user.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *OrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}
