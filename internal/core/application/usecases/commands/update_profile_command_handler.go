package commands

import (
	"context"
	"time"

	"steelorders/internal/core/domain/model/audit"
	"steelorders/internal/core/domain/model/user"
)

// UpdateProfileCommandHandler updates the caller's own profile. Every role may
// do so, so no policy check is involved.
type UpdateProfileCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewUpdateProfileCommandHandler(uowFactory UserUoWFactory) UpdateProfileCommandHandler {
	return UpdateProfileCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateProfileCommandHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*user.User, error) {
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

	userRepo := uow.UserRepository()
	self, err := userRepo.Get(ctx, cmd.Actor().ID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	self.UpdateProfile(cmd.Profile(), now)

	if err = userRepo.Update(ctx, self); err != nil {
		return nil, err
	}

	if err = appendEntry(ctx, uow, audit.ProfileUpdated, "Profile information updated", self.ID(), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return self, nil
}
