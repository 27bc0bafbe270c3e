package http

import (
	"net/http"

	"pizzeria/internal/core/application/usecases"
	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateCustomer handles POST /api/customers.
func (s *Server) CreateCustomer(ctx echo.Context) error {
	var req CreateCustomerRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	c, err := s.customers.CreateCustomer(ctx.Request().Context(), usecases.CustomerInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toCustomerResponse(c))
}

// GetCustomer handles GET /api/customers/:id.
func (s *Server) GetCustomer(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	c, err := s.customers.GetCustomerByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toCustomerResponse(c))
}

// UpdateCustomer handles PUT /api/customers/:id. Omitted fields keep their value.
func (s *Server) UpdateCustomer(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	var req UpdateCustomerRequest
	if err = bind(ctx, &req); err != nil {
		return err
	}
	c, err := s.customers.UpdateCustomer(ctx.Request().Context(), id, usecases.CustomerUpdate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toCustomerResponse(c))
}

// GetCustomerAllergies handles GET /api/customers/:id/allergies.
func (s *Server) GetCustomerAllergies(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	allergies, err := s.customers.GetCustomerAllergies(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toAllergyResponses(allergies))
}

// AddAllergy handles POST /api/customers/allergies/add. A blank severity means moderate.
func (s *Server) AddAllergy(ctx echo.Context) error {
	var req AddAllergyRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	customerID, err := parseID("customerId", req.CustomerID)
	if err != nil {
		return err
	}
	severity, err := customer.ParseSeverity(req.Allergy.Severity)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("severity", err)
	}
	c, err := s.customers.AddAllergy(ctx.Request().Context(), customerID, usecases.AllergyInput{
		Name:     req.Allergy.Name,
		Severity: severity,
		Notes:    req.Allergy.Notes,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toCustomerResponse(c))
}

// RemoveAllergy handles POST /api/customers/allergies/remove.
func (s *Server) RemoveAllergy(ctx echo.Context) error {
	var req RemoveAllergyRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	customerID, err := parseID("customerId", req.CustomerID)
	if err != nil {
		return err
	}
	c, err := s.customers.RemoveAllergy(ctx.Request().Context(), customerID, req.AllergyName)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toCustomerResponse(c))
}
