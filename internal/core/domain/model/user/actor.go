package user

import (
	"errors"

	"steelorders/internal/core/domain/model/kernel"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	id   kernel.UUID
	role Role
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// Validate rejects the zero Actor.
func (a Actor) Validate() error {
	return errors.Join(a.id.Validate(), a.role.Validate())
}
