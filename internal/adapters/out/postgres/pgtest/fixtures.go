package pgtest

import (
	"fmt"
	"time"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/model/user"
)

// Details returns order details that pass validation.
func Details() order.Details {
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

// NewUser builds a user with a unique e-mail.
func NewUser(role user.Role, createdAt time.Time) (*user.User, error) {
	id := kernel.NewUUID()
	return user.NewUser(
		id,
		fmt.Sprintf("%s@plant.example", id.String()),
		role,
		user.Profile{FirstName: "Test", LastName: string(role)},
		user.Credentials{},
		createdAt,
	)
}

// NewOrder builds an order in the given status owned by ownerID.
func NewOrder(ownerID kernel.UUID, sequence int64, status order.Status, createdAt time.Time) (*order.Order, error) {
	number, err := order.NewNumber(createdAt.Year(), sequence)
	if err != nil {
		return nil, err
	}

	var (
		qty   *int
		notes *string
	)
	if status == order.Completed {
		q, n := 950, "Partial dispatch"
		qty, notes = &q, &n
	}
	return order.RestoreOrder(kernel.NewUUID(), number, ownerID, Details(), status, qty, notes, createdAt, createdAt)
}
