package commands

import (
	"context"
	"time"

	"steelorders/internal/core/domain/model/audit"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/services"
	"steelorders/internal/pkg/errs"
)

// UpdateOrderCommandHandler edits draft orders. The owning USER and ADMIN may
// edit; the write only applies while the order is still DRAFT in the store.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     *services.AccessPolicy
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, policy *services.AccessPolicy) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle returns the updated order.
//
// Errors, in the order they are checked:
//   - *errs.ObjectNotFoundError
//   - *errs.AccessDeniedError
//   - *errs.StateIsInvalidError unless the order is DRAFT
//   - *errs.ValueIsRequiredError for an empty patch
//   - validation errors for the merged details
//   - *errs.ConcurrentModificationError if the order changed meanwhile
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := loadOrder(ctx, uow, h.policy, cmd.Actor(), services.ActionUpdate, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Status().ValidateEditable("edited"); err != nil {
		return nil, err
	}
	if cmd.Patch().IsEmpty() {
		return nil, errs.NewValueIsRequiredError("changes")
	}

	now := time.Now().UTC()
	expected := o.Status()
	if err = o.Edit(cmd.Patch().Apply(o.Details()), now); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o, expected); err != nil {
		return nil, err
	}

	if err = appendOrderEntry(ctx, uow, audit.OrderUpdated, o, cmd.Actor().ID(), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
