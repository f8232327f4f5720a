package http

import (
	"errors"
	"log/slog"
	"net/http"

	"steelorders/internal/core/application/usecases/commands"
	"steelorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps domain errors to HTTP status codes. Anything unknown is a
// store or programming failure and becomes 500.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, commands.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrStateIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {code, message}. Server errors are logged with
// their cause and answered with a generic message.
func writeError(c echo.Context, logger *slog.Logger, err error) error {
	status := statusOf(err)

	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(httpErr.Code)
		}
	}
	if status == http.StatusUnauthorized {
		message = "unauthorized"
	}
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		message = "internal server error"
	}

	return c.JSON(status, ErrorResponse{Code: status, Message: message})
}
