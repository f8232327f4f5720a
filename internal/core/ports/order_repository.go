package ports

import (
	"context"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Writes to an existing order are conditional: they only apply while the stored
// status still equals the status the caller loaded. A write that matches no row
// returns *errs.ConcurrentModificationError, so two racing transitions never both
// succeed.
type OrderRepository interface {
	// Add persists a new order. A duplicate order number is reported as
	// *errs.ConcurrentModificationError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id or returns *errs.ObjectNotFoundError.
	// Inside a unit of work the order stays locked until commit or rollback.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Update persists the aggregate if the stored status still equals expected.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Delete removes the order if the stored status still equals expected.
	Delete(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// NextNumber atomically reserves the next order number of the given year.
	NextNumber(ctx context.Context, year int) (order.Number, error)
}
