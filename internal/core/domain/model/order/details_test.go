package order_test

import (
	"testing"
	"time"

	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() order.Details {
	return order.Details{
		Destination:         "Tata Steel",
		MaterialCode:        "MAT001",
		Party:               "Steel Supplier A",
		Mill:                "Blast Furnace",
		Priority:            1,
		MaterialDescription: "HR coil 2.5mm",
		OrderQuantity:       1000,
		ValidUntil:          time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestDetails_Validate(t *testing.T) {
	t.Run("valid details", func(t *testing.T) {
		require.NoError(t, validDetails().Validate())
	})

	t.Run("priority bounds are inclusive", func(t *testing.T) {
		d := validDetails()
		d.Priority = order.MaxPriority
		require.NoError(t, d.Validate())

		d.Priority = order.MaxPriority + 1
		require.ErrorIs(t, d.Validate(), errs.ErrValueIsOutOfRange)

		d.Priority = 0
		require.ErrorIs(t, d.Validate(), errs.ErrValueIsOutOfRange)
	})

	t.Run("order quantity must be positive", func(t *testing.T) {
		d := validDetails()
		d.OrderQuantity = 0

		err := d.Validate()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "orderQuantity")
	})

	t.Run("all missing fields are reported together", func(t *testing.T) {
		err := order.Details{Priority: 1, OrderQuantity: 1}.Validate()

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		for _, field := range []string{"destination", "materialCode", "party", "mill", "materialDescription", "validUntil"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("whitespace only is missing", func(t *testing.T) {
		d := validDetails()
		d.Mill = "   "
		require.ErrorIs(t, d.Validate(), errs.ErrValueIsRequired)
	})
}

func TestParseValidUntil(t *testing.T) {
	t.Run("calendar date", func(t *testing.T) {
		got, err := order.ParseValidUntil("2026-12-31")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("RFC 3339 timestamp", func(t *testing.T) {
		got, err := order.ParseValidUntil("2026-12-31T10:00:00+05:30")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.December, 31, 4, 30, 0, 0, time.UTC), got)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := order.ParseValidUntil(" ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := order.ParseValidUntil("next tuesday")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDetailsPatch_Apply(t *testing.T) {
	priority := 1500
	mill := "Plate Mill"

	patched := order.DetailsPatch{Priority: &priority, Mill: &mill}.Apply(validDetails())

	want := validDetails()
	want.Priority = 1500
	want.Mill = "Plate Mill"
	assert.Equal(t, want, patched)
}

func TestDetailsPatch_IsEmpty(t *testing.T) {
	assert.True(t, order.DetailsPatch{}.IsEmpty())

	quantity := 5
	assert.False(t, order.DetailsPatch{OrderQuantity: &quantity}.IsEmpty())
}
