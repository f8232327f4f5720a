package queries

import (
	"context"
	"time"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryPoint is one order on the ADMIN charts.
type HistoryPoint struct {
	ID          kernel.UUID
	OrderNumber string
	Status      order.Status
	CreatedAt   time.Time
}

// GetOrderHistoryQueryHandler returns every order, newest first, reduced to
// what the charts need.
type GetOrderHistoryQueryHandler struct {
	db     *gorm.DB
	policy *services.AccessPolicy
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB, policy *services.AccessPolicy) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db, policy: policy}
}

func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query AdminQuery) ([]HistoryPoint, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if _, err := h.policy.Authorize(query.Actor(), services.ResourceStats, services.ActionView); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			created_at
		FROM orders
		ORDER BY created_at DESC, order_number DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]HistoryPoint, 0)
	for rows.Next() {
		var (
			point  HistoryPoint
			id     uuid.UUID
			status string
		)
		if err = rows.Scan(&id, &point.OrderNumber, &status, &point.CreatedAt); err != nil {
			return nil, err
		}

		if point.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if point.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		point.CreatedAt = point.CreatedAt.UTC()
		points = append(points, point)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
