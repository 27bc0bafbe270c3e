package http

import (
	"net/http"

	"pizzeria/internal/core/application/usecases"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/orders - opens an empty cart for a customer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	customerID, err := parseID("customerId", req.CustomerID)
	if err != nil {
		return err
	}
	o, err := s.orders.CreateOrder(ctx.Request().Context(), customerID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toOrderResponse(o))
}

// GetOrdersByStatus handles GET /api/orders?status=.
func (s *Server) GetOrdersByStatus(ctx echo.Context) error {
	raw := ctx.QueryParam("status")
	if raw == "" {
		return errs.NewValueIsRequiredError("status")
	}
	status, err := order.ParseStatus(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	orders, err := s.orders.GetOrdersByStatus(ctx.Request().Context(), status)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	o, err := s.orders.GetOrderByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// GetOrderTotal handles GET /api/orders/:id/total.
func (s *Server) GetOrderTotal(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	total, err := s.orders.GetOrderTotal(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, OrderTotalResponse{
		OrderID: total.OrderID.String(),
		Total:   money(total.Total),
	})
}

// GetCustomerOrders handles GET /api/orders/customer/:customerId.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := pathID(ctx, "customerId")
	if err != nil {
		return err
	}
	orders, err := s.orders.GetOrdersByCustomer(ctx.Request().Context(), customerID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// AddPizza handles POST /api/orders/add-pizza. The quantity defaults to 1.
func (s *Server) AddPizza(ctx echo.Context) error {
	var req OrderItemRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	orderID, err := parseID("orderId", req.OrderID)
	if err != nil {
		return err
	}
	pizzaID, err := parseID("pizzaId", req.PizzaID)
	if err != nil {
		return err
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	o, err := s.orders.AddPizzaToOrder(ctx.Request().Context(), orderID, pizzaID, quantity)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// RemovePizza handles POST /api/orders/remove-pizza.
func (s *Server) RemovePizza(ctx echo.Context) error {
	var req OrderItemRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	orderID, err := parseID("orderId", req.OrderID)
	if err != nil {
		return err
	}
	pizzaID, err := parseID("pizzaId", req.PizzaID)
	if err != nil {
		return err
	}
	o, err := s.orders.RemovePizzaFromOrder(ctx.Request().Context(), orderID, pizzaID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// UpdateQuantity handles POST /api/orders/update-quantity. A quantity of zero or less
// removes the line.
func (s *Server) UpdateQuantity(ctx echo.Context) error {
	var req OrderItemRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	if req.Quantity == nil {
		return errs.NewValueIsRequiredError("quantity")
	}
	orderID, err := parseID("orderId", req.OrderID)
	if err != nil {
		return err
	}
	pizzaID, err := parseID("pizzaId", req.PizzaID)
	if err != nil {
		return err
	}
	o, err := s.orders.UpdatePizzaQuantity(ctx.Request().Context(), orderID, pizzaID, *req.Quantity)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// SetDeliveryAddress handles POST /api/orders/delivery-address.
func (s *Server) SetDeliveryAddress(ctx echo.Context) error {
	var req DeliveryAddressRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	orderID, err := parseID("orderId", req.OrderID)
	if err != nil {
		return err
	}
	o, err := s.orders.SetDeliveryAddress(ctx.Request().Context(), orderID, usecases.AddressInput{
		Street:       req.Address.Street,
		City:         req.Address.City,
		State:        req.Address.State,
		ZipCode:      req.Address.ZipCode,
		Country:      req.Address.Country,
		Instructions: req.Address.Instructions,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// SetPayment handles POST /api/orders/payment. The response only ever carries the masked
// card number.
func (s *Server) SetPayment(ctx echo.Context) error {
	var req PaymentRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	orderID, err := parseID("orderId", req.OrderID)
	if err != nil {
		return err
	}
	o, err := s.orders.SetPayment(ctx.Request().Context(), orderID, usecases.PaymentInput{
		Method:         order.PaymentMethod(req.Payment.Method),
		CardNumber:     req.Payment.CardNumber,
		CardHolder:     req.Payment.CardHolder,
		ExpirationDate: req.Payment.ExpirationDate,
		CVV:            req.Payment.CVV,
		BillingAddress: req.Payment.BillingAddress,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// ConfirmOrder handles POST /api/orders/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	o, err := s.orders.ConfirmOrder(ctx.Request().Context(), orderID)
	if err != nil {
		return err
	}
	s.metrics.orderTransition(o.Status())
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// CancelOrder handles POST /api/orders/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	o, err := s.orders.CancelOrder(ctx.Request().Context(), orderID)
	if err != nil {
		return err
	}
	s.metrics.orderTransition(o.Status())
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// SetOrderStatus handles POST /api/orders/status - kitchen and delivery progress.
func (s *Server) SetOrderStatus(ctx echo.Context) error {
	var req OrderStatusRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	orderID, err := parseID("orderId", req.OrderID)
	if err != nil {
		return err
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	o, err := s.orders.SetOrderStatus(ctx.Request().Context(), orderID, status)
	if err != nil {
		return err
	}
	s.metrics.orderTransition(o.Status())
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

func bindOrderID(ctx echo.Context) (kernel.UUID, error) {
	var req OrderRequest
	if err := bind(ctx, &req); err != nil {
		return kernel.UUID{}, err
	}
	return parseID("orderId", req.OrderID)
}
