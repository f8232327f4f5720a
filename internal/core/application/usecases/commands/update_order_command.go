package commands

import (
	"errors"

	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand changes some detail fields of a draft order.
// Fields left nil in the patch keep their value. An empty patch is rejected by
// the handler once access and state have been checked.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	OrderCommand

	patch order.DetailsPatch
	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(target OrderCommand, patch order.DetailsPatch) (UpdateOrderCommand, error) {
	if err := target.Validate(); err != nil {
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{
		OrderCommand: target,
		patch:        patch,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) Patch() order.DetailsPatch {
	return c.patch
}
