package order

import (
	"fmt"

	"steelorders/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	DRAFT --finalize--> FINALIZED --complete--> COMPLETED
//	DRAFT --update----> DRAFT
//	DRAFT --delete----> (removed)
//
// COMPLETED is terminal. No transition is reversible.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota

	// Draft is the initial status. Draft orders can be edited, deleted and finalized.
	Draft

	// Finalized orders wait in the operations queue for fulfilment.
	Finalized

	// Completed orders were fulfilled. Final state.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Draft:     "DRAFT",
		Finalized: "FINALIZED",
		Completed: "COMPLETED",
	}
}

// ParseStatus converts the persisted or transported name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if s != Draft && s != Finalized && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns DRAFT, FINALIZED, COMPLETED or UNKNOWN.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsFulfillment reports whether the order has left the owner's hands
// and is visible to operations.
func (s Status) IsFulfillment() bool {
	return s == Finalized || s == Completed
}

// ValidateEditable checks that field edits and deletion are allowed.
// operation is used in the error message ("edited", "deleted").
func (s Status) ValidateEditable(operation string) error {
	if s != Draft {
		return errs.NewStateIsInvalidError(operation, s.String(), Draft.String())
	}
	return nil
}

// Finalize transitions DRAFT -> FINALIZED.
func (s Status) Finalize() (Status, error) {
	if s != Draft {
		return Unknown, errs.NewStateIsInvalidError("finalized", s.String(), Draft.String())
	}
	return Finalized, nil
}

// Complete transitions FINALIZED -> COMPLETED.
func (s Status) Complete() (Status, error) {
	if s != Finalized {
		return Unknown, errs.NewStateIsInvalidError("completed", s.String(), Finalized.String())
	}
	return Completed, nil
}
