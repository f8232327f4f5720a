package commands

import (
	"errors"
	"fmt"

	"steelorders/internal/pkg/errs"
	"steelorders/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand records the fulfilment of a finalized order.
// The dispatch quantity may differ from the ordered quantity.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	OrderCommand

	dispatchQuantity int
	completionNotes  string
	guard            guard.ConstructorGuard
}

func NewCompleteOrderCommand(target OrderCommand, dispatchQuantity int, completionNotes string) (CompleteOrderCommand, error) {
	if err := target.Validate(); err != nil {
		return CompleteOrderCommand{}, err
	}
	if dispatchQuantity < 0 {
		return CompleteOrderCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"dispatchQuantity",
			fmt.Errorf("%d is negative", dispatchQuantity),
		)
	}

	return CompleteOrderCommand{
		OrderCommand:     target,
		dispatchQuantity: dispatchQuantity,
		completionNotes:  completionNotes,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) DispatchQuantity() int {
	return c.dispatchQuantity
}

func (c CompleteOrderCommand) CompletionNotes() string {
	return c.completionNotes
}
