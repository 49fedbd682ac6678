package http

import (
	"errors"
	"log/slog"
	"net/http"

	"ftl/internal/generated/servers"
	"ftl/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps an application error to its HTTP status. Ownership and
// admissibility failures are 400 by convention, not 403.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrInadmissible),
		errors.Is(err, errs.ErrNotPermitted):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// problem renders err as the single {code, message} response of the request.
func problem(ctx echo.Context, logger *slog.Logger, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	code := statusOf(err)
	message := err.Error()

	var collab *errs.CollaboratorError
	if errors.As(err, &collab) {
		message = collab.Detail()
	}
	if code == http.StatusInternalServerError {
		logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		if collab == nil {
			message = http.StatusText(code)
		}
	}

	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

// errorHandler renders errors that escape the handlers, such as failed
// authentication or unknown routes, in the same shape.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			if text, ok := httpErr.Message.(string); ok {
				message = text
			} else {
				message = http.StatusText(code)
			}
		} else {
			logger.ErrorContext(ctx.Request().Context(), "unhandled error", "path", ctx.Path(), "error", err)
		}

		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(code)
		} else {
			err = ctx.JSON(code, servers.Error{Code: code, Message: message})
		}
		if err != nil {
			logger.ErrorContext(ctx.Request().Context(), "cannot write error response", "error", err)
		}
	}
}
