package http

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"steelorders/internal/core/application/usecases/queries"
	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// TokenParser verifies a bearer token and returns the user it was issued to.
type TokenParser interface {
	Parse(token string) (kernel.UUID, error)
}

// ActorResolver loads the current role of a user. The role is read on every
// request so a role change takes effect without a new login.
type ActorResolver interface {
	Handle(ctx context.Context, query queries.GetActorQuery) (user.Actor, error)
}

// Authenticate resolves the bearer token into an actor and stores it on the
// echo context. Requests without a valid identity are answered with 401.
func Authenticate(tokens TokenParser, actors ActorResolver, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return writeError(c, logger, errs.ErrUnauthorized)
			}

			userID, err := tokens.Parse(raw)
			if err != nil {
				return writeError(c, logger, fmt.Errorf("%w: %w", errs.ErrUnauthorized, err))
			}

			query, err := queries.NewGetActorQuery(userID)
			if err != nil {
				return writeError(c, logger, fmt.Errorf("%w: %w", errs.ErrUnauthorized, err))
			}

			actor, err := actors.Handle(c.Request().Context(), query)
			if err != nil {
				return writeError(c, logger, err)
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func actorFrom(c echo.Context) (user.Actor, error) {
	actor, ok := c.Get(actorContextKey).(user.Actor)
	if !ok {
		return user.Actor{}, errs.ErrUnauthorized
	}
	return actor, nil
}
