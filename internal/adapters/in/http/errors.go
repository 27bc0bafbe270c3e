package http

import (
	"errors"
	"log/slog"
	"net/http"

	"pizzeria/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// statusOf maps an error returned by a service to its HTTP status.
//
// ErrDomainRule is checked before ErrValidation: a rejected confirmation wraps the
// checkout ValidationError and must still be reported as 422.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrDomainRule):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// newErrorHandler renders every handler error as an Error body. Internal failures are
// logged and hidden behind a generic message.
func newErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := statusOf(err)
		body := Error{Code: status, Message: err.Error()}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			body.Message = http.StatusText(httpErr.Code)
			if msg, ok := httpErr.Message.(string); ok {
				body.Message = msg
			}
		}

		var validationErr *errs.ValidationError
		if errors.As(err, &validationErr) {
			body.Details = validationErr.Problems()
		}

		if status == http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
			body.Message = "internal server error"
			body.Details = nil
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", writeErr)
		}
	}
}
