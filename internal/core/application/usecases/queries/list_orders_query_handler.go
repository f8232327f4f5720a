package queries

import (
	"context"
	"fmt"

	"steelorders/internal/core/domain/model/order"
	"steelorders/internal/core/domain/services"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler lists orders scoped by the role of the actor:
//   - USER sees the orders it created
//   - OPERATIONS_MANAGER sees FINALIZED orders (pending) or the HistoryCap most
//     recent COMPLETED orders (history)
//   - ADMIN sees everything
type ListOrdersQueryHandler struct {
	db     *gorm.DB
	policy *services.AccessPolicy
}

func NewListOrdersQueryHandler(db *gorm.DB, policy *services.AccessPolicy) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, policy: policy}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	scope, err := h.policy.Authorize(query.Actor(), services.ResourceOrder, services.ActionList)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	var (
		filter func(*gorm.DB) *gorm.DB
		capped bool
	)
	switch scope {
	case services.ScopeAny:
		filter = func(db *gorm.DB) *gorm.DB { return db }
	case services.ScopeOwn:
		ownerID := query.Actor().ID().Google()
		filter = func(db *gorm.DB) *gorm.DB { return db.Where("o.user_id = ?", ownerID) }
	case services.ScopeFulfillment:
		status := order.Finalized
		if query.View() == ViewHistory {
			status, capped = order.Completed, true
		}
		filter = func(db *gorm.DB) *gorm.DB { return db.Where("o.status = ?", status.String()) }
	default:
		return ListOrdersQueryResponse{}, fmt.Errorf("unsupported list scope %q", scope)
	}

	var total int64
	if err = h.db.WithContext(ctx).Table("orders AS o").Scopes(filter).Count(&total).Error; err != nil {
		return ListOrdersQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.Limit()
	limit := query.Limit()
	if capped {
		total = min(total, HistoryCap)
		limit = min(limit, HistoryCap-offset)
	}

	rows := make([]orderRow, 0, max(limit, 0))
	if limit > 0 && int64(offset) < total {
		err = h.db.WithContext(ctx).
			Table("orders AS o").
			Select(orderColumns).
			Joins(ordersWithOwner).
			Scopes(filter).
			Order("o.created_at DESC").
			Order("o.order_number DESC").
			Offset(offset).
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return ListOrdersQueryResponse{}, err
		}
	}

	orders, err := toOrderReadModels(rows)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return ListOrdersQueryResponse{
		Orders:     orders,
		Pagination: newPagination(query.Page(), query.Limit(), total),
	}, nil
}
