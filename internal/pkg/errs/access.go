package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when a request carries no valid identity.
	ErrUnauthorized = errors.New("unauthorized")

	ErrAccessDenied = errors.New("access denied")
)

// AccessDeniedError reports that Role may not perform Action on Resource,
// either because the role lacks the permission or because the actor does not own the object.
type AccessDeniedError struct {
	Role     string
	Resource string
	Action   string
	Reason   string
}

func NewAccessDeniedError(role, resource, action, reason string) *AccessDeniedError {
	return &AccessDeniedError{
		Role:     role,
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}

func (e *AccessDeniedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s cannot %s %s: %s", ErrAccessDenied, e.Role, e.Action, e.Resource, e.Reason)
	}
	return fmt.Sprintf("%s: %s cannot %s %s", ErrAccessDenied, e.Role, e.Action, e.Resource)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}
