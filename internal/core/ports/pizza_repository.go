package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/pizza"
)

// PizzaRepository defines the persistence contract for the pizza catalog.
type PizzaRepository interface {
	FindByID(ctx context.Context, id kernel.UUID) (*pizza.Pizza, error)
	FindAll(ctx context.Context) ([]*pizza.Pizza, error)

	// FindByName returns the pizzas whose name contains name, ignoring case.
	FindByName(ctx context.Context, name string) ([]*pizza.Pizza, error)

	Save(ctx context.Context, aggregate *pizza.Pizza) (*pizza.Pizza, error)
	Update(ctx context.Context, aggregate *pizza.Pizza) (*pizza.Pizza, error)
	Delete(ctx context.Context, id kernel.UUID) (bool, error)
}

// ToppingRepository defines the persistence contract for toppings.
type ToppingRepository interface {
	FindByID(ctx context.Context, id kernel.UUID) (*pizza.Topping, error)
	FindAll(ctx context.Context) ([]*pizza.Topping, error)

	// FindAvailable returns the toppings that may currently be ordered.
	FindAvailable(ctx context.Context) ([]*pizza.Topping, error)

	Save(ctx context.Context, topping *pizza.Topping) (*pizza.Topping, error)
	Update(ctx context.Context, topping *pizza.Topping) (*pizza.Topping, error)
	Delete(ctx context.Context, id kernel.UUID) (bool, error)
}
