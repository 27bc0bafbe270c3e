package http

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"pizzeria/internal/core/application/usecases"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Server holds the HTTP handlers of the pizzeria API.
// It translates requests into service calls and domain objects into response bodies;
// status codes for failures are chosen centrally by the error handler.
type Server struct {
	pizzas    *usecases.PizzaService
	orders    *usecases.OrderService
	customers *usecases.CustomerService
	metrics   *Metrics
	now       func() time.Time
}

// NewServer creates a new HTTP server backed by the application services.
func NewServer(
	pizzas *usecases.PizzaService,
	orders *usecases.OrderService,
	customers *usecases.CustomerService,
	metrics *Metrics,
	clock kernel.Clock,
) *Server {
	return &Server{
		pizzas:    pizzas,
		orders:    orders,
		customers: customers,
		metrics:   metrics,
		now:       clock.Now,
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

// Index handles GET /api - lists every endpoint with a short description.
func (s *Server) Index(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]any{
		"message":   "Pizzeria API",
		"version":   "1.0.0",
		"endpoints": endpointIndex,
	})
}

var endpointIndex = map[string]map[string]string{
	"pizzas": {
		"GET /api/pizzas":                        "Get all pizzas (optional ?name= filter)",
		"GET /api/pizzas/:id":                    "Get pizza by ID",
		"POST /api/pizzas":                       "Create custom pizza",
		"POST /api/pizzas/add-topping":           "Add topping to pizza",
		"POST /api/pizzas/remove-topping":        "Remove topping from pizza",
		"GET /api/pizzas/toppings/available":     "Get all available toppings",
		"POST /api/pizzas/toppings/availability": "Switch a topping on or off",
		"POST /api/pizzas/check-allergens":       "Check allergens for a pizza",
	},
	"orders": {
		"POST /api/orders":                     "Create new order",
		"GET /api/orders?status=":              "Get orders by status",
		"GET /api/orders/:id":                  "Get order by ID",
		"GET /api/orders/customer/:customerId": "Get orders by customer",
		"POST /api/orders/add-pizza":           "Add pizza to order (shopping cart)",
		"POST /api/orders/remove-pizza":        "Remove pizza from order",
		"POST /api/orders/update-quantity":     "Update pizza quantity",
		"POST /api/orders/delivery-address":    "Set delivery address",
		"POST /api/orders/payment":             "Set payment information",
		"POST /api/orders/confirm":             "Confirm order",
		"POST /api/orders/cancel":              "Cancel order",
		"POST /api/orders/status":              "Set order status (kitchen and delivery)",
		"GET /api/orders/:id/total":            "Get order total",
	},
	"customers": {
		"POST /api/customers":                  "Create new customer",
		"GET /api/customers/:id":               "Get customer by ID",
		"PUT /api/customers/:id":               "Update customer",
		"POST /api/customers/allergies/add":    "Add allergy (secure storage)",
		"POST /api/customers/allergies/remove": "Remove allergy",
		"GET /api/customers/:id/allergies":     "Get customer allergies",
	},
}

// bind decodes the request body into req and checks its validate tags.
func bind(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return ctx.Validate(req)
}

// pathID binds a UUID path parameter.
func pathID(ctx echo.Context, name string) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &raw,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Required:      true,
		})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(raw[:])
}

// parseID parses an identifier taken from a request body field.
func parseID(field, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return id, nil
}

// requestValidator adapts go-playground/validator to echo.Validator. Violations come back
// as one *errs.ValidationError naming the JSON fields.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

func (v *requestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	problems := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, errs.NewValueIsRequiredError(fe.Field()))
		default:
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fe.Field(), fmt.Errorf("failed the %q rule", fe.Tag()),
			))
		}
	}
	return errs.Validate("request", problems...)
}
