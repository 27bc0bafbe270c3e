package usecases

import (
	"context"
	"errors"
	"log/slog"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/pizza"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// ErrToppingUnavailable is the cause of the DomainRuleError returned when a pizza would get
// a topping that is currently switched off.
var ErrToppingUnavailable = errors.New("topping is not available")

// PizzaService serves the catalog: reading pizzas and toppings, assembling custom pizzas
// and answering allergen questions about a single pizza.
type PizzaService struct {
	pizzas   ports.PizzaRepository
	toppings ports.ToppingRepository
	guard    services.AllergenGuard
	ids      kernel.IDGenerator
	clock    kernel.Clock
	logger   *slog.Logger
}

func NewPizzaService(
	pizzas ports.PizzaRepository,
	toppings ports.ToppingRepository,
	ids kernel.IDGenerator,
	clock kernel.Clock,
	logger *slog.Logger,
) *PizzaService {
	return &PizzaService{
		pizzas:   pizzas,
		toppings: toppings,
		guard:    services.NewAllergenGuard(),
		ids:      ids,
		clock:    clock,
		logger:   logger.With("component", "pizza_service"),
	}
}

// CreateCustomPizza assembles a new pizza from available toppings. The pizza declares the
// base allergens (dairy, gluten) plus the allergens of every selected topping.
//
// Returns *errs.ObjectNotFoundError for an unknown topping, a DomainRuleError wrapping
// ErrToppingUnavailable for a topping that is switched off, and a *errs.ValidationError
// listing every invalid field of the pizza itself.
func (s *PizzaService) CreateCustomPizza(ctx context.Context, in CustomPizzaInput) (*pizza.Pizza, error) {
	toppings := make([]*pizza.Topping, 0, len(in.ToppingIDs))
	for _, id := range in.ToppingIDs {
		t, err := s.availableTopping(ctx, id)
		if err != nil {
			return nil, err
		}
		toppings = append(toppings, t)
	}

	p, err := pizza.NewPizza(
		s.ids.NewID(),
		in.Name,
		in.BasePrice,
		in.Size,
		pizza.DefaultBaseAllergens(),
		toppings,
		s.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	saved, err := s.pizzas.Save(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "custom pizza created",
		"pizza_id", saved.ID().String(),
		"name", saved.Name(),
		"toppings", len(toppings),
	)
	return saved, nil
}

// AddToppingToPizza puts an available topping on a pizza and rebuilds its allergen set.
// Adding a topping that is already on the pizza changes nothing.
func (s *PizzaService) AddToppingToPizza(ctx context.Context, pizzaID, toppingID kernel.UUID) (*pizza.Pizza, error) {
	p, err := s.pizzas.FindByID(ctx, pizzaID)
	if err != nil {
		return nil, err
	}

	t, err := s.availableTopping(ctx, toppingID)
	if err != nil {
		return nil, err
	}

	if err = p.AddTopping(t); err != nil {
		return nil, err
	}
	return s.pizzas.Update(ctx, p)
}

// RemoveToppingFromPizza takes a topping off a pizza and rebuilds its allergen set from
// the base allergens and the remaining toppings.
func (s *PizzaService) RemoveToppingFromPizza(ctx context.Context, pizzaID, toppingID kernel.UUID) (*pizza.Pizza, error) {
	p, err := s.pizzas.FindByID(ctx, pizzaID)
	if err != nil {
		return nil, err
	}

	p.RemoveTopping(toppingID)
	return s.pizzas.Update(ctx, p)
}

// CheckAllergens reports which of allergens the pizza contains, in input order.
func (s *PizzaService) CheckAllergens(ctx context.Context, pizzaID kernel.UUID, allergens []string) (AllergenCheck, error) {
	p, err := s.pizzas.FindByID(ctx, pizzaID)
	if err != nil {
		return AllergenCheck{}, err
	}

	conflicts := s.guard.PizzaConflicts(p, allergens)
	return AllergenCheck{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	}, nil
}

func (s *PizzaService) GetAllPizzas(ctx context.Context) ([]*pizza.Pizza, error) {
	return s.pizzas.FindAll(ctx)
}

func (s *PizzaService) GetPizzaByID(ctx context.Context, id kernel.UUID) (*pizza.Pizza, error) {
	return s.pizzas.FindByID(ctx, id)
}

// SearchPizzas returns the pizzas whose name contains name, ignoring case.
func (s *PizzaService) SearchPizzas(ctx context.Context, name string) ([]*pizza.Pizza, error) {
	return s.pizzas.FindByName(ctx, name)
}

func (s *PizzaService) GetAvailableToppings(ctx context.Context) ([]*pizza.Topping, error) {
	return s.toppings.FindAvailable(ctx)
}

// SetToppingAvailability switches a topping on or off. Pizzas that already carry the
// topping keep it; only new selections are affected.
func (s *PizzaService) SetToppingAvailability(ctx context.Context, toppingID kernel.UUID, available bool) (*pizza.Topping, error) {
	t, err := s.toppings.FindByID(ctx, toppingID)
	if err != nil {
		return nil, err
	}

	t.SetAvailability(available)
	updated, err := s.toppings.Update(ctx, t)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "topping availability changed",
		"topping_id", toppingID.String(),
		"available", available,
	)
	return updated, nil
}

func (s *PizzaService) availableTopping(ctx context.Context, id kernel.UUID) (*pizza.Topping, error) {
	t, err := s.toppings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsAvailable() {
		return nil, errs.NewDomainRuleErrorWithCause("topping "+t.Name()+" is not available", ErrToppingUnavailable)
	}
	return t, nil
}
