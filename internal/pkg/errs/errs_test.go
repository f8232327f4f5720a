package errs_test

import (
	"errors"
	"testing"

	"steelorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: order 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("user", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: user 123 (cause: database connection failed)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", 456)
		assert.Equal(t, "object not found: order 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("priority", 2001, 1, 2000)

		assert.Equal(t, "priority", err.ParamName)
		assert.Equal(t, 2001, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 2000, err.Max)
		assert.Equal(t, "value is out of range: priority is 2001, min value is 1, max value is 2000", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t,
			"value is out of range: score is -5, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
	})

	t.Run("values are rendered on one line", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("destination")

	assert.Equal(t, "value is required: destination", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("destination", errors.New("blank"))
	assert.Equal(t, "value is required: destination (cause: blank)", withCause.Error())
}

func TestAccessDeniedError(t *testing.T) {
	t.Run("without reason", func(t *testing.T) {
		err := errs.NewAccessDeniedError("OPERATIONS_MANAGER", "order", "delete", "")
		assert.Equal(t, "access denied: OPERATIONS_MANAGER cannot delete order", err.Error())
		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("with reason", func(t *testing.T) {
		err := errs.NewAccessDeniedError("USER", "order", "update", "order belongs to another user")
		assert.Equal(t, "access denied: USER cannot update order: order belongs to another user", err.Error())
	})
}

func TestStateIsInvalidError(t *testing.T) {
	err := errs.NewStateIsInvalidError("completed", "DRAFT", "FINALIZED")

	assert.Equal(t, "state is invalid: only FINALIZED orders can be completed (current status is DRAFT)", err.Error())
	require.ErrorIs(t, err, errs.ErrStateIsInvalid)

	var target *errs.StateIsInvalidError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "FINALIZED", target.Expected)
}

func TestConcurrentModificationError(t *testing.T) {
	err := errs.NewConcurrentModificationError("order", "ORD-2026-0001")
	assert.Equal(t, "concurrent modification: order ORD-2026-0001 was changed by another request", err.Error())
	require.ErrorIs(t, err, errs.ErrConcurrentModification)

	cause := errors.New("duplicate key")
	withCause := errs.NewConcurrentModificationErrorWithCause("order", "ORD-2026-0001", cause)
	assert.Contains(t, withCause.Error(), "(cause: duplicate key)")
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "unauthorized", errs.ErrUnauthorized.Error())
	assert.Equal(t, "access denied", errs.ErrAccessDenied.Error())
	assert.Equal(t, "state is invalid", errs.ErrStateIsInvalid.Error())
	assert.Equal(t, "concurrent modification", errs.ErrConcurrentModification.Error())
}

func TestErrorsCanBeUnwrappedThroughJoin(t *testing.T) {
	joined := errors.Join(
		errs.NewValueIsRequiredError("party"),
		errs.NewValueIsOutOfRangeError("priority", 0, 1, 2000),
	)

	require.ErrorIs(t, joined, errs.ErrValueIsRequired)
	require.ErrorIs(t, joined, errs.ErrValueIsOutOfRange)
	assert.NotErrorIs(t, joined, errs.ErrValueIsInvalid)
}
