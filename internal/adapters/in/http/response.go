package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Response is the envelope of every reply.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Response{
		Success: false,
		Message: message,
	})
}

// statusOf maps the errs taxonomy onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError converts a use case error into a failure envelope. Unexpected
// errors are logged and answered with a generic message.
func writeError(c echo.Context, logger *slog.Logger, err error, message string) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(c.Request().Context(), message,
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return fail(c, status, message)
	}
	if status == http.StatusBadGateway {
		logger.WarnContext(c.Request().Context(), message, "error", err)
		return fail(c, status, message)
	}
	return fail(c, status, err.Error())
}

// httpErrorHandler keeps echo's own errors (unknown route, bad method,
// middleware rejections) inside the envelope.
func httpErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		} else {
			logger.ErrorContext(c.Request().Context(), "unhandled error", "error", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = fail(c, status, message)
	}
}
