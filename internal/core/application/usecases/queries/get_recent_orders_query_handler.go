package queries

import (
	"context"

	"steelorders/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetRecentOrdersQueryHandler returns the RecentOrdersLimit newest orders with
// their owners.
type GetRecentOrdersQueryHandler struct {
	db     *gorm.DB
	policy *services.AccessPolicy
}

func NewGetRecentOrdersQueryHandler(db *gorm.DB, policy *services.AccessPolicy) GetRecentOrdersQueryHandler {
	return GetRecentOrdersQueryHandler{db: db, policy: policy}
}

func (h GetRecentOrdersQueryHandler) Handle(ctx context.Context, query AdminQuery) ([]OrderReadModel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if _, err := h.policy.Authorize(query.Actor(), services.ResourceStats, services.ActionView); err != nil {
		return nil, err
	}

	rows := make([]orderRow, 0, RecentOrdersLimit)
	err := h.db.WithContext(ctx).
		Table("orders AS o").
		Select(orderColumns).
		Joins(ordersWithOwner).
		Order("o.created_at DESC").
		Order("o.order_number DESC").
		Limit(RecentOrdersLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return toOrderReadModels(rows)
}
