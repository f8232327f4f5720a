package user

import (
	"fmt"
	"slices"

	"steelorders/internal/pkg/errs"
)

// Role decides what an actor may do.
type Role string

const (
	RoleUser              Role = "USER"
	RoleOperationsManager Role = "OPERATIONS_MANAGER"
	RoleAdmin             Role = "ADMIN"
)

// Roles lists every valid role.
func Roles() []Role {
	return []Role{RoleUser, RoleOperationsManager, RoleAdmin}
}

// ParseRole converts a persisted or transported role name.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	if !slices.Contains(Roles(), r) {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

func (r Role) String() string {
	return string(r)
}
