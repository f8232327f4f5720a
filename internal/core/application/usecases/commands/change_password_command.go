package commands

import (
	"errors"
	"fmt"

	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/pkg/errs"
	"steelorders/internal/pkg/guard"
	"steelorders/internal/pkg/password"
)

var ErrChangePasswordCommandIsNotConstructed = errors.New(
	"ChangePasswordCommand must be created via NewChangePasswordCommand constructor",
)

// ChangePasswordCommand sets a new password for the actor. The current
// password is required only if the account already has one.
type ChangePasswordCommand struct { //nolint:recvcheck //using for validation
	actor           user.Actor
	currentPassword string
	newPassword     string

	guard guard.ConstructorGuard
}

func NewChangePasswordCommand(actor user.Actor, currentPassword, newPassword string) (ChangePasswordCommand, error) {
	cmd := ChangePasswordCommand{
		actor:           actor,
		currentPassword: currentPassword,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		cmd.setNewPassword(newPassword),
	); err != nil {
		return ChangePasswordCommand{}, err
	}

	return cmd, nil
}

func (c ChangePasswordCommand) Validate() error {
	return c.guard.Validate(ErrChangePasswordCommandIsNotConstructed)
}

func (c ChangePasswordCommand) Actor() user.Actor {
	return c.actor
}

func (c ChangePasswordCommand) CurrentPassword() string {
	return c.currentPassword
}

func (c ChangePasswordCommand) NewPassword() string {
	return c.newPassword
}

func (c *ChangePasswordCommand) setNewPassword(newPassword string) error {
	return validateNewPassword(newPassword, func(v string) { c.newPassword = v })
}

func validateNewPassword(plain string, set func(string)) error {
	if plain == "" {
		return errs.NewValueIsRequiredError("newPassword")
	}
	if len(plain) < password.MinLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"newPassword",
			fmt.Errorf("must be at least %d characters", password.MinLength),
		)
	}
	set(plain)
	return nil
}
