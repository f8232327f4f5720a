package commands

import (
	"context"
	"fmt"
	"time"

	"steelorders/internal/core/domain/model/audit"
	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/core/domain/services"
)

// ChangeUserRoleCommandHandler lets an ADMIN reassign roles. The new role is
// effective on the user's next request, since identity is resolved per request.
type ChangeUserRoleCommandHandler struct {
	uowFactory UserUoWFactory
	policy     *services.AccessPolicy
}

func NewChangeUserRoleCommandHandler(uowFactory UserUoWFactory, policy *services.AccessPolicy) ChangeUserRoleCommandHandler {
	return ChangeUserRoleCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h ChangeUserRoleCommandHandler) Handle(ctx context.Context, cmd ChangeUserRoleCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.policy.Authorize(cmd.Actor(), services.ResourceUser, services.ActionManage); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	target, err := userRepo.Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	previous, err := target.ChangeRole(cmd.Role(), now)
	if err != nil {
		return nil, err
	}

	if err = userRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Role of %s changed from %s to %s", target.Email(), previous, target.Role())
	if err = appendEntry(ctx, uow, audit.UserRoleUpdated, details, cmd.Actor().ID(), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
