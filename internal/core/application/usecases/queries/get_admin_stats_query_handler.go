package queries

import (
	"context"

	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/services"

	"gorm.io/gorm"
)

// AdminStats are the dashboard counters.
type AdminStats struct {
	TotalUsers      int64
	TotalOrders     int64
	DraftOrders     int64
	FinalizedOrders int64
	CompletedOrders int64
}

type GetAdminStatsQueryHandler struct {
	db     *gorm.DB
	policy *services.AccessPolicy
}

func NewGetAdminStatsQueryHandler(db *gorm.DB, policy *services.AccessPolicy) GetAdminStatsQueryHandler {
	return GetAdminStatsQueryHandler{db: db, policy: policy}
}

func (h GetAdminStatsQueryHandler) Handle(ctx context.Context, query AdminQuery) (AdminStats, error) {
	if err := query.Validate(); err != nil {
		return AdminStats{}, err
	}
	if _, err := h.policy.Authorize(query.Actor(), services.ResourceStats, services.ActionView); err != nil {
		return AdminStats{}, err
	}

	var stats AdminStats
	if err := h.db.WithContext(ctx).Table("users").Count(&stats.TotalUsers).Error; err != nil {
		return AdminStats{}, err
	}

	var counts []struct {
		Status string
		Total  int64
	}
	err := h.db.WithContext(ctx).
		Table("orders").
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return AdminStats{}, err
	}

	for _, c := range counts {
		stats.TotalOrders += c.Total
		switch c.Status {
		case order.Draft.String():
			stats.DraftOrders = c.Total
		case order.Finalized.String():
			stats.FinalizedOrders = c.Total
		case order.Completed.String():
			stats.CompletedOrders = c.Total
		}
	}

	return stats, nil
}
