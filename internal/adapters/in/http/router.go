package http

import (
	"log/slog"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig controls the ambient parts of the router.
type RouterConfig struct {
	Logger *slog.Logger

	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer

	// Doc enables request validation against the OpenAPI document when set.
	Doc *openapi3.T
}

// NewRouter builds the echo instance serving the pizzeria API.
func NewRouter(s *Server, cfg RouterConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = newErrorHandler(cfg.Logger)

	e.Use(requestLogger(cfg.Logger))
	e.Use(s.metrics.middleware())
	e.Use(middleware.Recover())
	if cfg.Doc != nil {
		validate, err := openAPIValidator(cfg.Doc)
		if err != nil {
			return nil, err
		}
		e.Use(validate)
	}

	e.GET("/health", s.Health)
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("", s.Index)

	pizzas := api.Group("/pizzas")
	pizzas.GET("", s.GetPizzas)
	pizzas.POST("", s.CreatePizza)
	pizzas.GET("/:id", s.GetPizza)
	pizzas.POST("/add-topping", s.AddTopping)
	pizzas.POST("/remove-topping", s.RemoveTopping)
	pizzas.GET("/toppings/available", s.GetAvailableToppings)
	pizzas.POST("/toppings/availability", s.SetToppingAvailability)
	pizzas.POST("/check-allergens", s.CheckAllergens)

	orders := api.Group("/orders")
	orders.GET("", s.GetOrdersByStatus)
	orders.POST("", s.CreateOrder)
	orders.GET("/:id", s.GetOrder)
	orders.GET("/:id/total", s.GetOrderTotal)
	orders.GET("/customer/:customerId", s.GetCustomerOrders)
	orders.POST("/add-pizza", s.AddPizza)
	orders.POST("/remove-pizza", s.RemovePizza)
	orders.POST("/update-quantity", s.UpdateQuantity)
	orders.POST("/delivery-address", s.SetDeliveryAddress)
	orders.POST("/payment", s.SetPayment)
	orders.POST("/confirm", s.ConfirmOrder)
	orders.POST("/cancel", s.CancelOrder)
	orders.POST("/status", s.SetOrderStatus)

	customers := api.Group("/customers")
	customers.POST("", s.CreateCustomer)
	customers.GET("/:id", s.GetCustomer)
	customers.PUT("/:id", s.UpdateCustomer)
	customers.GET("/:id/allergies", s.GetCustomerAllergies)
	customers.POST("/allergies/add", s.AddAllergy)
	customers.POST("/allergies/remove", s.RemoveAllergy)

	return e, nil
}
