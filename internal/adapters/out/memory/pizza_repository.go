package memory

import (
	"context"
	"strings"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/pizza"
)

type PizzaRepository struct {
	store *store[*pizza.Pizza]
}

func NewPizzaRepository() *PizzaRepository {
	return &PizzaRepository{
		store: newStore("pizza", (*pizza.Pizza).ID, (*pizza.Pizza).Clone),
	}
}

func (r *PizzaRepository) FindByID(ctx context.Context, id kernel.UUID) (*pizza.Pizza, error) {
	return r.store.get(ctx, id)
}

func (r *PizzaRepository) FindAll(ctx context.Context) ([]*pizza.Pizza, error) {
	return r.store.find(ctx, nil)
}

func (r *PizzaRepository) FindByName(ctx context.Context, name string) ([]*pizza.Pizza, error) {
	needle := strings.ToLower(name)
	return r.store.find(ctx, func(p *pizza.Pizza) bool {
		return strings.Contains(strings.ToLower(p.Name()), needle)
	})
}

func (r *PizzaRepository) Save(ctx context.Context, aggregate *pizza.Pizza) (*pizza.Pizza, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}
	return r.store.upsert(ctx, aggregate)
}

func (r *PizzaRepository) Update(ctx context.Context, aggregate *pizza.Pizza) (*pizza.Pizza, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}
	return r.store.replace(ctx, aggregate)
}

func (r *PizzaRepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	return r.store.remove(ctx, id)
}

type ToppingRepository struct {
	store *store[*pizza.Topping]
}

func NewToppingRepository() *ToppingRepository {
	return &ToppingRepository{
		store: newStore("topping", (*pizza.Topping).ID, (*pizza.Topping).Clone),
	}
}

func (r *ToppingRepository) FindByID(ctx context.Context, id kernel.UUID) (*pizza.Topping, error) {
	return r.store.get(ctx, id)
}

func (r *ToppingRepository) FindAll(ctx context.Context) ([]*pizza.Topping, error) {
	return r.store.find(ctx, nil)
}

func (r *ToppingRepository) FindAvailable(ctx context.Context) ([]*pizza.Topping, error) {
	return r.store.find(ctx, (*pizza.Topping).IsAvailable)
}

func (r *ToppingRepository) Save(ctx context.Context, topping *pizza.Topping) (*pizza.Topping, error) {
	if err := topping.Validate(); err != nil {
		return nil, err
	}
	return r.store.upsert(ctx, topping)
}

func (r *ToppingRepository) Update(ctx context.Context, topping *pizza.Topping) (*pizza.Topping, error) {
	if err := topping.Validate(); err != nil {
		return nil, err
	}
	return r.store.replace(ctx, topping)
}

func (r *ToppingRepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	return r.store.remove(ctx, id)
}
