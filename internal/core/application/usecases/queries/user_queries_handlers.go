package queries

import (
	"context"
	"errors"

	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/core/ports"
	"steelorders/internal/pkg/errs"
	"steelorders/internal/pkg/password"

	"gorm.io/gorm"
)

type GetProfileQueryHandler struct {
	db *gorm.DB
}

func NewGetProfileQueryHandler(db *gorm.DB) GetProfileQueryHandler {
	return GetProfileQueryHandler{db: db}
}

func (h GetProfileQueryHandler) Handle(ctx context.Context, query GetProfileQuery) (UserReadModel, error) {
	if err := query.Validate(); err != nil {
		return UserReadModel{}, err
	}

	u, err := findUser(ctx, h.db, "id = ?", query.Actor().ID().Google())
	if err != nil {
		return UserReadModel{}, err
	}
	if u == nil {
		return UserReadModel{}, errs.NewObjectNotFoundError("user", query.Actor().ID())
	}
	return NewUserReadModel(u), nil
}

// GetActorQueryHandler fails with errs.ErrUnauthorized when the account no
// longer exists.
type GetActorQueryHandler struct {
	db *gorm.DB
}

func NewGetActorQueryHandler(db *gorm.DB) GetActorQueryHandler {
	return GetActorQueryHandler{db: db}
}

func (h GetActorQueryHandler) Handle(ctx context.Context, query GetActorQuery) (user.Actor, error) {
	if err := query.Validate(); err != nil {
		return user.Actor{}, err
	}

	u, err := findUser(ctx, h.db, "id = ?", query.UserID().Google())
	if err != nil {
		return user.Actor{}, err
	}
	if u == nil {
		return user.Actor{}, errs.ErrUnauthorized
	}
	return u.Actor(), nil
}

// AuthenticateQueryHandler verifies credentials. Unknown e-mail, accounts
// without a password and wrong passwords all fail with errs.ErrUnauthorized,
// so callers cannot tell them apart.
type AuthenticateQueryHandler struct {
	db     *gorm.DB
	hasher ports.PasswordHasher
}

func NewAuthenticateQueryHandler(db *gorm.DB, hasher ports.PasswordHasher) AuthenticateQueryHandler {
	return AuthenticateQueryHandler{db: db, hasher: hasher}
}

func (h AuthenticateQueryHandler) Handle(ctx context.Context, query AuthenticateQuery) (UserReadModel, error) {
	if err := query.Validate(); err != nil {
		return UserReadModel{}, err
	}

	u, err := findUser(ctx, h.db, "email = ?", query.Email())
	if err != nil {
		return UserReadModel{}, err
	}
	if u == nil || !u.HasPassword() {
		return UserReadModel{}, errs.ErrUnauthorized
	}

	if err = h.hasher.Compare(*u.Credentials().PasswordHash, query.Password()); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return UserReadModel{}, errs.ErrUnauthorized
		}
		return UserReadModel{}, err
	}

	return NewUserReadModel(u), nil
}
