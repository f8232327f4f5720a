package commands

import (
	"errors"

	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to raise a new material order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, order.Details{
//	    Destination:         "Tata Steel",
//	    MaterialCode:        "MAT001",
//	    Party:               "Steel Supplier A",
//	    Mill:                "Blast Furnace",
//	    Priority:            1,
//	    MaterialDescription: "HR coil",
//	    OrderQuantity:       1000,
//	    ValidUntil:          validUntil,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor   user.Actor
	details order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the actor and every detail field at once.
func NewCreateOrderCommand(actor user.Actor, details order.Details) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setDetails(details),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() user.Actor {
	return c.actor
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c *CreateOrderCommand) setActor(actor user.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setDetails(details order.Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	c.details = details
	return nil
}
