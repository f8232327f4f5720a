package commands

import (
	"errors"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/pkg/errs"
	"steelorders/internal/pkg/guard"
)

var ErrChangeUserRoleCommandIsNotConstructed = errors.New(
	"ChangeUserRoleCommand must be created via NewChangeUserRoleCommand constructor",
)

// ChangeUserRoleCommand reassigns the role of a user. Only ADMIN may do it.
type ChangeUserRoleCommand struct { //nolint:recvcheck //using for validation
	actor  user.Actor
	userID kernel.UUID
	role   user.Role

	guard guard.ConstructorGuard
}

func NewChangeUserRoleCommand(actor user.Actor, userID kernel.UUID, role user.Role) (ChangeUserRoleCommand, error) {
	cmd := ChangeUserRoleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		cmd.setUserID(userID),
		role.Validate(),
	); err != nil {
		return ChangeUserRoleCommand{}, err
	}
	cmd.actor = actor
	cmd.role = role

	return cmd, nil
}

func (c ChangeUserRoleCommand) Validate() error {
	return c.guard.Validate(ErrChangeUserRoleCommandIsNotConstructed)
}

func (c ChangeUserRoleCommand) Actor() user.Actor {
	return c.actor
}

func (c ChangeUserRoleCommand) UserID() kernel.UUID {
	return c.userID
}

func (c ChangeUserRoleCommand) Role() user.Role {
	return c.role
}

func (c *ChangeUserRoleCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	c.userID = userID
	return nil
}
