package guard_test

import (
	"errors"
	"testing"

	"steelorders/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type completeCommand struct {
		dispatchQuantity int
		guard            guard.ConstructorGuard
	}
	errNotConstructed := errors.New("completeCommand must be created via newCompleteCommand")

	newCompleteCommand := func(qty int) (completeCommand, error) {
		if qty < 0 {
			return completeCommand{}, errors.New("dispatch quantity cannot be negative")
		}
		return completeCommand{dispatchQuantity: qty, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_output_is_valid", func(t *testing.T) {
		cmd, err := newCompleteCommand(950)
		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errNotConstructed))
		assert.Equal(t, 950, cmd.dispatchQuantity)
	})

	t.Run("literal_is_rejected", func(t *testing.T) {
		cmd := completeCommand{dispatchQuantity: 950}
		assert.Equal(t, errNotConstructed, cmd.guard.Validate(errNotConstructed))
	})

	t.Run("failed_construction_returns_zero_value", func(t *testing.T) {
		cmd, err := newCompleteCommand(-1)
		require.Error(t, err)
		assert.Equal(t, errNotConstructed, cmd.guard.Validate(errNotConstructed))
	})
}
