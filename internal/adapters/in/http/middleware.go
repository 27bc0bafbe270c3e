package http

import (
	"errors"
	"log/slog"
	"strings"

	"pizzeria/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// requestLogger writes one structured line per request.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"route", v.RoutePath,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	})
}

// openAPIValidator checks every request that matches an operation of doc against its
// parameters and request body. Requests outside the document (health, metrics, swagger)
// pass through untouched.
func openAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		MultiError:         true,
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(c)
			}

			err := openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return requestProblems(err)
			}
			return next(c)
		}
	}, nil
}

// requestProblems turns the errors reported by openapi3filter into one ValidationError.
// Schema failures are reported by their JSON pointer and reason, without the schema dump.
func requestProblems(err error) error {
	var problems []error
	collectProblems(err, "request body", &problems)
	return errs.Validate("request", problems...)
}

func collectProblems(err error, field string, out *[]error) {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			collectProblems(inner, field, out)
		}
	case *openapi3filter.RequestError:
		if e.Parameter != nil {
			field = e.Parameter.Name
		}
		if e.Err != nil {
			collectProblems(e.Err, field, out)
			return
		}
		*out = append(*out, errs.NewValueIsInvalidErrorWithCause(field, errors.New(e.Reason)))
	case *openapi3.SchemaError:
		if pointer := e.JSONPointer(); len(pointer) > 0 {
			field = strings.Join(pointer, ".")
		}
		*out = append(*out, errs.NewValueIsInvalidErrorWithCause(field, errors.New(e.Reason)))
	default:
		*out = append(*out, errs.NewValueIsInvalidErrorWithCause(field, err))
	}
}
