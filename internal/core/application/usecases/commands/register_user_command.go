package commands

import (
	"errors"
	"strings"

	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/pkg/errs"
	"steelorders/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand provisions an account with a password. It is used by
// the seeding tool; there is no self sign-up.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	email       string
	role        user.Role
	profile     user.Profile
	newPassword string

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(email string, role user.Role, profile user.Profile, plainPassword string) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		email:   strings.TrimSpace(email),
		role:    role,
		profile: profile,
		guard:   guard.NewConstructorGuard(),
	}

	var emailErr error
	if cmd.email == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	}

	if err := errors.Join(
		emailErr,
		role.Validate(),
		validateNewPassword(plainPassword, func(v string) { cmd.newPassword = v }),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Email() string {
	return c.email
}

func (c RegisterUserCommand) Role() user.Role {
	return c.role
}

func (c RegisterUserCommand) Profile() user.Profile {
	return c.profile
}

func (c RegisterUserCommand) Password() string {
	return c.newPassword
}
