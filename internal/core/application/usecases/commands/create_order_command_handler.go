package commands

import (
	"context"
	"time"

	"steelorders/internal/core/domain/model/audit"
	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/services"
)

// CreateOrderCommandHandler creates DRAFT orders owned by the calling USER.
// The order number is reserved from the store inside the same transaction, so a
// rolled back create never leaves a half-written order behind.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     *services.AccessPolicy
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, policy *services.AccessPolicy) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle returns the created order.
//
// Errors:
//   - *errs.AccessDeniedError unless the actor is a USER
//   - *errs.ConcurrentModificationError if the reserved number is already taken
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if _, err := h.policy.Authorize(actor, services.ResourceOrder, services.ActionCreate); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	orderRepo := uow.OrderRepository()

	number, err := orderRepo.NextNumber(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(kernel.NewUUID(), number, actor.ID(), cmd.Details(), now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = appendOrderEntry(ctx, uow, audit.OrderCreated, created, actor.ID(), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
