package commands

import (
	"errors"

	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/pkg/guard"
)

var ErrUpdateProfileCommandIsNotConstructed = errors.New(
	"UpdateProfileCommand must be created via NewUpdateProfileCommand constructor",
)

// UpdateProfileCommand replaces the self-service profile of the actor.
type UpdateProfileCommand struct { //nolint:recvcheck //using for validation
	actor   user.Actor
	profile user.Profile

	guard guard.ConstructorGuard
}

func NewUpdateProfileCommand(actor user.Actor, profile user.Profile) (UpdateProfileCommand, error) {
	if err := actor.Validate(); err != nil {
		return UpdateProfileCommand{}, err
	}

	return UpdateProfileCommand{
		actor:   actor,
		profile: profile,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProfileCommandIsNotConstructed)
}

func (c UpdateProfileCommand) Actor() user.Actor {
	return c.actor
}

func (c UpdateProfileCommand) Profile() user.Profile {
	return c.profile
}
