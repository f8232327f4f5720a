package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"steelorders/internal/pkg/errs"
)

const (
	MinPriority = 1
	MaxPriority = 2000
)

const validUntilLayout = time.DateOnly

// Details are the fields a USER fills in when requesting material.
// They are editable while the order is a draft.
type Details struct {
	Destination         string
	MaterialCode        string
	Party               string
	Mill                string
	Priority            int
	MaterialDescription string
	OrderQuantity       int
	ValidUntil          time.Time
}

// Validate reports every violated rule at once.
func (d Details) Validate() error {
	return errors.Join(
		required("destination", d.Destination),
		required("materialCode", d.MaterialCode),
		required("party", d.Party),
		required("mill", d.Mill),
		required("materialDescription", d.MaterialDescription),
		validatePriority(d.Priority),
		validateOrderQuantity(d.OrderQuantity),
		validateValidUntil(d.ValidUntil),
	)
}

// ParseValidUntil accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseValidUntil(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errs.NewValueIsRequiredError("validUntil")
	}
	if t, err := time.Parse(validUntilLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("validUntil", fmt.Errorf("%q is not a date", s))
	}
	return t.UTC(), nil
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func validatePriority(priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return errs.NewValueIsOutOfRangeError("priority", priority, MinPriority, MaxPriority)
	}
	return nil
}

func validateOrderQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderQuantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}

func validateValidUntil(validUntil time.Time) error {
	if validUntil.IsZero() {
		return errs.NewValueIsRequiredError("validUntil")
	}
	return nil
}

// DetailsPatch carries the fields of a partial update. Nil fields keep their
// current value.
type DetailsPatch struct {
	Destination         *string
	MaterialCode        *string
	Party               *string
	Mill                *string
	Priority            *int
	MaterialDescription *string
	OrderQuantity       *int
	ValidUntil          *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p DetailsPatch) IsEmpty() bool {
	return p == DetailsPatch{}
}

// Apply returns d with the patched fields replaced. The result is not validated.
func (p DetailsPatch) Apply(d Details) Details {
	if p.Destination != nil {
		d.Destination = *p.Destination
	}
	if p.MaterialCode != nil {
		d.MaterialCode = *p.MaterialCode
	}
	if p.Party != nil {
		d.Party = *p.Party
	}
	if p.Mill != nil {
		d.Mill = *p.Mill
	}
	if p.Priority != nil {
		d.Priority = *p.Priority
	}
	if p.MaterialDescription != nil {
		d.MaterialDescription = *p.MaterialDescription
	}
	if p.OrderQuantity != nil {
		d.OrderQuantity = *p.OrderQuantity
	}
	if p.ValidUntil != nil {
		d.ValidUntil = *p.ValidUntil
	}
	return d
}
