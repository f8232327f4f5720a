package queries

import (
	"context"
	"errors"
	"strings"

	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/pkg/errs"
	"steelorders/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrGetProfileQueryIsNotConstructed = errors.New(
		"GetProfileQuery must be created via NewGetProfileQuery constructor",
	)
	ErrGetActorQueryIsNotConstructed = errors.New(
		"GetActorQuery must be created via NewGetActorQuery constructor",
	)
	ErrAuthenticateQueryIsNotConstructed = errors.New(
		"AuthenticateQuery must be created via NewAuthenticateQuery constructor",
	)
)

// GetProfileQuery loads the actor's own account.
type GetProfileQuery struct {
	actor user.Actor

	guard guard.ConstructorGuard
}

func NewGetProfileQuery(actor user.Actor) (GetProfileQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetProfileQuery{}, err
	}
	return GetProfileQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetProfileQueryIsNotConstructed)
}

func (q GetProfileQuery) Actor() user.Actor {
	return q.actor
}

// GetActorQuery resolves the identity behind an authenticated request. The
// role is read on every request so a role change applies immediately.
type GetActorQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetActorQuery(userID kernel.UUID) (GetActorQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetActorQuery{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	return GetActorQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetActorQuery) Validate() error {
	return q.guard.Validate(ErrGetActorQueryIsNotConstructed)
}

func (q GetActorQuery) UserID() kernel.UUID {
	return q.userID
}

// AuthenticateQuery checks e-mail and password credentials.
type AuthenticateQuery struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateQuery(email, password string) (AuthenticateQuery, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var emailErr, passwordErr error
	if email == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(emailErr, passwordErr); err != nil {
		return AuthenticateQuery{}, err
	}

	return AuthenticateQuery{email: email, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (q AuthenticateQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateQueryIsNotConstructed)
}

func (q AuthenticateQuery) Email() string {
	return q.email
}

func (q AuthenticateQuery) Password() string {
	return q.password
}

// findUser returns nil without error when no row matches.
func findUser(ctx context.Context, db *gorm.DB, query string, args ...any) (*user.User, error) {
	var rows []userRow
	err := db.WithContext(ctx).
		Table("users").
		Select(userColumns).
		Where(query, args...).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toDomain()
}
