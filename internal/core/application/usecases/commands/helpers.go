package commands

import (
	"context"
	"time"

	"steelorders/internal/core/domain/model/audit"
	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/core/domain/services"
)

func appendOrderEntry(
	ctx context.Context,
	uow AuditLogRepoFactory,
	action audit.Action,
	o *order.Order,
	actorID kernel.UUID,
	now time.Time,
) error {
	entry, err := audit.NewOrderEntry(action, o, actorID, now)
	if err != nil {
		return err
	}
	return uow.AuditLogRepository().Append(ctx, entry)
}

func appendEntry(
	ctx context.Context,
	uow AuditLogRepoFactory,
	action audit.Action,
	details string,
	actorID kernel.UUID,
	now time.Time,
) error {
	entry, err := audit.NewEntry(action, details, actorID, now)
	if err != nil {
		return err
	}
	return uow.AuditLogRepository().Append(ctx, entry)
}

// loadOrder fetches the order and checks that actor may perform action on it.
func loadOrder(
	ctx context.Context,
	uow OrderRepoFactory,
	policy *services.AccessPolicy,
	actor user.Actor,
	action services.Action,
	orderID kernel.UUID,
) (*order.Order, error) {
	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeOrder(actor, action, o); err != nil {
		return nil, err
	}
	return o, nil
}
