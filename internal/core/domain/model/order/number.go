package order

import (
	"fmt"
	"regexp"

	"steelorders/internal/pkg/errs"
)

var numberPattern = regexp.MustCompile(`^ORD-\d{4}-\d{4,}$`)

// Number is the human readable order identifier, ORD-<year>-<sequence>.
// The sequence is zero padded to four digits and grows past 9999 without truncation.
type Number string

// NewNumber formats a number from the creation year and the store assigned sequence.
func NewNumber(year int, sequence int64) (Number, error) {
	if sequence <= 0 {
		return "", errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "unbounded")
	}
	if year < 1000 || year > 9999 {
		return "", errs.NewValueIsOutOfRangeError("year", year, 1000, 9999)
	}
	return Number(fmt.Sprintf("ORD-%d-%04d", year, sequence)), nil
}

// ParseNumber validates a persisted number.
func ParseNumber(s string) (Number, error) {
	if !numberPattern.MatchString(s) {
		return "", errs.NewValueIsInvalidErrorWithCause("orderNumber", fmt.Errorf("%q does not match ORD-<year>-<sequence>", s))
	}
	return Number(s), nil
}

func (n Number) String() string {
	return string(n)
}
