package commands

import (
	"context"
	"time"

	"steelorders/internal/core/domain/model/audit"
	"steelorders/internal/core/domain/services"
)

// DeleteOrderCommandHandler removes draft orders. Permissions are the same as
// for editing. The audit entry keeps the id of the removed order.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     *services.AccessPolicy
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, policy *services.AccessPolicy) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd OrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := loadOrder(ctx, uow, h.policy, cmd.Actor(), services.ActionDelete, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	expected := o.Status()
	if err = o.MarkDeleted(now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Delete(ctx, o, expected); err != nil {
		return err
	}

	if err = appendOrderEntry(ctx, uow, audit.OrderDeleted, o, cmd.Actor().ID(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
