package queries

import (
	"errors"

	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/pkg/guard"
)

// RecentOrdersLimit is the size of the ADMIN "recent orders" panel.
const RecentOrdersLimit = 10

var ErrAdminQueryIsNotConstructed = errors.New(
	"AdminQuery must be created via NewAdminQuery constructor",
)

// AdminQuery is the parameterless input of the ADMIN dashboard reads:
// stats, order history, recent orders and the user list. Access is checked
// by each handler.
type AdminQuery struct {
	actor user.Actor

	guard guard.ConstructorGuard
}

func NewAdminQuery(actor user.Actor) (AdminQuery, error) {
	if err := actor.Validate(); err != nil {
		return AdminQuery{}, err
	}
	return AdminQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q AdminQuery) Validate() error {
	return q.guard.Validate(ErrAdminQueryIsNotConstructed)
}

func (q AdminQuery) Actor() user.Actor {
	return q.actor
}
