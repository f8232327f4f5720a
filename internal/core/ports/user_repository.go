package ports

import (
	"context"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	// Add persists a new user. A duplicate e-mail is reported as
	// *errs.ConcurrentModificationError.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists role, profile and credential changes.
	Update(ctx context.Context, aggregate *user.User) error

	// Get returns *errs.ObjectNotFoundError for unknown ids. Inside a unit of
	// work the user stays locked until commit or rollback.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail looks a user up by its normalised e-mail.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
