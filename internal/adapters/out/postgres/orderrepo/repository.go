package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"steelorders/internal/adapters/out/postgres/pgerrs"
	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// nextSequenceSQL bumps the per-year counter. The row lock taken by the upsert
// serialises concurrent creates until their transactions finish.
const nextSequenceSQL = `
INSERT INTO order_number_sequences (year, value) VALUES (?, 1)
ON CONFLICT (year) DO UPDATE SET value = order_number_sequences.value + 1
RETURNING value`

// mutableColumns are the columns a conditional update may change.
var mutableColumns = []string{
	"destination",
	"material_code",
	"party",
	"mill",
	"priority",
	"material_description",
	"order_quantity",
	"valid_until",
	"dispatch_quantity",
	"completion_notes",
	"status",
	"updated_at",
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsUniqueViolation(err, numberConstraint) {
			return errs.NewConcurrentModificationErrorWithCause("order", dto.OrderNumber, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the aggregate if the stored status is still expected.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Select(mutableColumns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("order", dto.OrderNumber)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes the order if the stored status is still expected.
func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", aggregate.ID().Google(), expected.String()).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("order", aggregate.Number().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID and locks its row until the surrounding
// transaction ends, so a loaded order cannot be rewritten from a stale copy.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "NO KEY UPDATE"}).
		First(&dto, "id = ?", id.Google()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// NextNumber reserves the next number of year.
func (r *GormOrderRepository) NextNumber(ctx context.Context, year int) (order.Number, error) {
	var sequence int64
	if err := r.db.WithContext(ctx).Raw(nextSequenceSQL, year).Scan(&sequence).Error; err != nil {
		return "", fmt.Errorf("failed to reserve order number: %w", err)
	}
	return order.NewNumber(year, sequence)
}
