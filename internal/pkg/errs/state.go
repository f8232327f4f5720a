package errs

import (
	"errors"
	"fmt"
)

var (
	ErrStateIsInvalid         = errors.New("state is invalid")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// StateIsInvalidError reports an operation that is not legal for the current state.
// Expected names the state the operation requires.
type StateIsInvalidError struct {
	Operation string
	Current   string
	Expected  string
}

func NewStateIsInvalidError(operation, current, expected string) *StateIsInvalidError {
	return &StateIsInvalidError{
		Operation: operation,
		Current:   current,
		Expected:  expected,
	}
}

func (e *StateIsInvalidError) Error() string {
	return fmt.Sprintf("%s: only %s orders can be %s (current status is %s)",
		ErrStateIsInvalid, e.Expected, e.Operation, e.Current)
}

func (e *StateIsInvalidError) Unwrap() error {
	return ErrStateIsInvalid
}

// ConcurrentModificationError reports that a conditional write lost a race:
// the row no longer matched the state it was read in.
type ConcurrentModificationError struct {
	Entity string
	ID     any
	Cause  error
}

func NewConcurrentModificationError(entity string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{Entity: entity, ID: id}
}

func NewConcurrentModificationErrorWithCause(entity string, id any, cause error) *ConcurrentModificationError {
	return &ConcurrentModificationError{Entity: entity, ID: id, Cause: cause}
}

func (e *ConcurrentModificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s was changed by another request (cause: %v)",
			ErrConcurrentModification, e.Entity, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s %s was changed by another request",
		ErrConcurrentModification, e.Entity, sanitize(e.ID))
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}
