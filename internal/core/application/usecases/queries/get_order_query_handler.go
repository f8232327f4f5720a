package queries

import (
	"context"

	"steelorders/internal/core/domain/services"
	"steelorders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler applies the view rule: owners see their orders,
// operations see FINALIZED and COMPLETED orders, ADMIN sees all.
type GetOrderQueryHandler struct {
	db     *gorm.DB
	policy *services.AccessPolicy
}

func NewGetOrderQueryHandler(db *gorm.DB, policy *services.AccessPolicy) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, policy: policy}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderReadModel, error) {
	if err := query.Validate(); err != nil {
		return OrderReadModel{}, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).
		Table("orders AS o").
		Select(orderColumns).
		Joins(ordersWithOwner).
		Where("o.id = ?", query.OrderID().Google()).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return OrderReadModel{}, err
	}
	if len(rows) == 0 {
		return OrderReadModel{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	o, err := rows[0].toDomain()
	if err != nil {
		return OrderReadModel{}, err
	}
	if err = h.policy.AuthorizeOrder(query.Actor(), services.ActionView, o); err != nil {
		return OrderReadModel{}, err
	}

	model := NewOrderReadModel(o)
	model.Owner = rows[0].owner()
	return model, nil
}
