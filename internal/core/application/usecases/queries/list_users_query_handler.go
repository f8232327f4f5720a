package queries

import (
	"context"

	"steelorders/internal/core/domain/services"

	"gorm.io/gorm"
)

// ListUsersQueryHandler returns every account, newest first.
type ListUsersQueryHandler struct {
	db     *gorm.DB
	policy *services.AccessPolicy
}

func NewListUsersQueryHandler(db *gorm.DB, policy *services.AccessPolicy) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db, policy: policy}
}

func (h ListUsersQueryHandler) Handle(ctx context.Context, query AdminQuery) ([]UserReadModel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if _, err := h.policy.Authorize(query.Actor(), services.ResourceUser, services.ActionList); err != nil {
		return nil, err
	}

	var rows []userRow
	err := h.db.WithContext(ctx).
		Table("users").
		Select(userColumns).
		Order("created_at DESC").
		Order("email").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]UserReadModel, 0, len(rows))
	for _, row := range rows {
		u, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, NewUserReadModel(u))
	}
	return users, nil
}
