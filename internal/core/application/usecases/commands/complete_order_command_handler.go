package commands

import (
	"context"
	"time"

	"steelorders/internal/core/domain/model/audit"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/services"
)

// CompleteOrderCommandHandler records fulfilment by an OPERATIONS_MANAGER
// (FINALIZED -> COMPLETED).
//
// Two managers completing the same order concurrently both load it as
// FINALIZED; the conditional update lets exactly one of them through and the
// other receives *errs.ConcurrentModificationError.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     *services.AccessPolicy
}

func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory, policy *services.AccessPolicy) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (*order.Order, error) {
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

	o, err := loadOrder(ctx, uow, h.policy, cmd.Actor(), services.ActionComplete, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expected := o.Status()
	if err = o.Complete(cmd.DispatchQuantity(), cmd.CompletionNotes(), now); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o, expected); err != nil {
		return nil, err
	}

	if err = appendOrderEntry(ctx, uow, audit.OrderCompleted, o, cmd.Actor().ID(), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
