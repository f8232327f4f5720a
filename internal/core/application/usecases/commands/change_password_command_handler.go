package commands

import (
	"context"
	"errors"
	"time"

	"steelorders/internal/core/domain/model/audit"
	"steelorders/internal/core/ports"
	"steelorders/internal/pkg/errs"
	"steelorders/internal/pkg/password"
)

// ChangePasswordCommandHandler changes or, for accounts created through an
// external provider, sets the caller's password.
type ChangePasswordCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewChangePasswordCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) ChangePasswordCommandHandler {
	return ChangePasswordCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

// Handle records PASSWORD_UPDATED when a password existed and PASSWORD_SET
// otherwise.
//
// Errors:
//   - *errs.ValueIsRequiredError if the account has a password and none was given
//   - *errs.ValueIsInvalidError if the current password is wrong
func (h ChangePasswordCommandHandler) Handle(ctx context.Context, cmd ChangePasswordCommand) error {
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

	userRepo := uow.UserRepository()
	self, err := userRepo.Get(ctx, cmd.Actor().ID())
	if err != nil {
		return err
	}

	if self.HasPassword() {
		if cmd.CurrentPassword() == "" {
			return errs.NewValueIsRequiredError("currentPassword")
		}
		if err = h.hasher.Compare(*self.Credentials().PasswordHash, cmd.CurrentPassword()); err != nil {
			if errors.Is(err, password.ErrMismatch) {
				return errs.NewValueIsInvalidErrorWithCause("currentPassword", errors.New("current password is incorrect"))
			}
			return err
		}
	}

	hash, err := h.hasher.Hash(cmd.NewPassword())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	hadPassword, err := self.SetPasswordHash(hash, now)
	if err != nil {
		return err
	}

	if err = userRepo.Update(ctx, self); err != nil {
		return err
	}

	action, details := audit.PasswordSet, "Password set for OAuth user"
	if hadPassword {
		action, details = audit.PasswordUpdated, "Password updated"
	}
	if err = appendEntry(ctx, uow, action, details, self.ID(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
