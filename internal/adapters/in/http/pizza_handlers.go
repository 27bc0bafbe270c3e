package http

import (
	"net/http"

	"pizzeria/internal/core/application/usecases"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/pizza"
	"pizzeria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// GetPizzas handles GET /api/pizzas. With ?name= it searches case-insensitively.
func (s *Server) GetPizzas(ctx echo.Context) error {
	var (
		pizzas []*pizza.Pizza
		err    error
	)
	if name := ctx.QueryParam("name"); name != "" {
		pizzas, err = s.pizzas.SearchPizzas(ctx.Request().Context(), name)
	} else {
		pizzas, err = s.pizzas.GetAllPizzas(ctx.Request().Context())
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toPizzaResponses(pizzas))
}

// GetPizza handles GET /api/pizzas/:id.
func (s *Server) GetPizza(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	p, err := s.pizzas.GetPizzaByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toPizzaResponse(p))
}

// CreatePizza handles POST /api/pizzas - assembles a custom pizza.
func (s *Server) CreatePizza(ctx echo.Context) error {
	var req CreatePizzaRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	size, err := pizza.ParseSize(req.Size)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("size", err)
	}

	toppingIDs := make([]kernel.UUID, 0, len(req.ToppingIDs))
	for _, raw := range req.ToppingIDs {
		id, err := parseID("toppingIds", raw)
		if err != nil {
			return err
		}
		toppingIDs = append(toppingIDs, id)
	}

	p, err := s.pizzas.CreateCustomPizza(ctx.Request().Context(), usecases.CustomPizzaInput{
		Name:       req.Name,
		BasePrice:  kernel.NewMoney(req.BasePrice),
		Size:       size,
		ToppingIDs: toppingIDs,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toPizzaResponse(p))
}

// AddTopping handles POST /api/pizzas/add-topping.
func (s *Server) AddTopping(ctx echo.Context) error {
	pizzaID, toppingID, err := bindPizzaTopping(ctx)
	if err != nil {
		return err
	}
	p, err := s.pizzas.AddToppingToPizza(ctx.Request().Context(), pizzaID, toppingID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toPizzaResponse(p))
}

// RemoveTopping handles POST /api/pizzas/remove-topping.
func (s *Server) RemoveTopping(ctx echo.Context) error {
	pizzaID, toppingID, err := bindPizzaTopping(ctx)
	if err != nil {
		return err
	}
	p, err := s.pizzas.RemoveToppingFromPizza(ctx.Request().Context(), pizzaID, toppingID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toPizzaResponse(p))
}

func bindPizzaTopping(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	var req PizzaToppingRequest
	if err := bind(ctx, &req); err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	pizzaID, err := parseID("pizzaId", req.PizzaID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	toppingID, err := parseID("toppingId", req.ToppingID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return pizzaID, toppingID, nil
}

// GetAvailableToppings handles GET /api/pizzas/toppings/available.
func (s *Server) GetAvailableToppings(ctx echo.Context) error {
	toppings, err := s.pizzas.GetAvailableToppings(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toToppingResponses(toppings))
}

// SetToppingAvailability handles POST /api/pizzas/toppings/availability.
func (s *Server) SetToppingAvailability(ctx echo.Context) error {
	var req ToppingAvailabilityRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	id, err := parseID("toppingId", req.ToppingID)
	if err != nil {
		return err
	}
	t, err := s.pizzas.SetToppingAvailability(ctx.Request().Context(), id, *req.Available)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toToppingResponse(t))
}

// CheckAllergens handles POST /api/pizzas/check-allergens.
func (s *Server) CheckAllergens(ctx echo.Context) error {
	var req CheckAllergensRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}
	id, err := parseID("pizzaId", req.PizzaID)
	if err != nil {
		return err
	}
	check, err := s.pizzas.CheckAllergens(ctx.Request().Context(), id, req.Allergens)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toAllergenCheckResponse(check))
}
