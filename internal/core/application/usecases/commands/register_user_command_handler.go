package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"steelorders/internal/core/domain/model/audit"
	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/core/ports"
	"steelorders/internal/pkg/errs"
)

// ErrUserAlreadyExists is returned when the e-mail is already registered.
var ErrUserAlreadyExists = errors.New("user already exists")

// RegisterUserCommandHandler creates accounts. The new user is recorded as the
// actor of its own USER_CREATED entry.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewRegisterUserCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := user.NewUser(kernel.NewUUID(), cmd.Email(), cmd.Role(), cmd.Profile(), user.Credentials{PasswordHash: &hash}, now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	if _, err = userRepo.GetByEmail(ctx, created.Email()); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserAlreadyExists, created.Email())
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if err = userRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("User %s created with role %s", created.Email(), created.Role())
	if err = appendEntry(ctx, uow, audit.UserCreated, details, created.ID(), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
