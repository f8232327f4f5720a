package commands

import (
	"context"
	"time"

	"steelorders/internal/core/domain/model/audit"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/services"
)

// FinalizeOrderCommandHandler hands a draft over to operations
// (DRAFT -> FINALIZED). Finalizing twice fails with *errs.StateIsInvalidError
// and writes nothing.
type FinalizeOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     *services.AccessPolicy
}

func NewFinalizeOrderCommandHandler(uowFactory OrderUoWFactory, policy *services.AccessPolicy) FinalizeOrderCommandHandler {
	return FinalizeOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h FinalizeOrderCommandHandler) Handle(ctx context.Context, cmd OrderCommand) (*order.Order, error) {
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

	o, err := loadOrder(ctx, uow, h.policy, cmd.Actor(), services.ActionFinalize, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expected := o.Status()
	if err = o.Finalize(now); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o, expected); err != nil {
		return nil, err
	}

	if err = appendOrderEntry(ctx, uow, audit.OrderFinalized, o, cmd.Actor().ID(), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
