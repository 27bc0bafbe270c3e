package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/pizza"
	"pizzeria/internal/core/ports"
)

type seedTopping struct {
	name      string
	price     string
	allergens []string
}

type seedPizza struct {
	name      string
	basePrice string
	toppings  []string
}

var sampleToppings = []seedTopping{
	{name: "Pepperoni", price: "1.50", allergens: []string{"pork"}},
	{name: "Mushrooms", price: "1.00"},
	{name: "Olives", price: "1.00"},
	{name: "Extra Cheese", price: "2.00", allergens: []string{"dairy"}},
	{name: "Bacon", price: "1.50", allergens: []string{"pork"}},
	{name: "Onions", price: "0.75"},
	{name: "Bell Peppers", price: "1.00"},
	{name: "Sausage", price: "1.50", allergens: []string{"pork"}},
	{name: "Pineapple", price: "1.25"},
	{name: "Spinach", price: "1.00"},
}

var samplePizzas = []seedPizza{
	{name: "Margherita", basePrice: "8.99"},
	{name: "Pepperoni", basePrice: "10.99", toppings: []string{"Pepperoni"}},
	{name: "Vegetarian", basePrice: "9.99", toppings: []string{"Mushrooms", "Olives"}},
}

// SeedCatalog loads the sample menu: ten toppings and three medium pizzas. Toppings are
// only seeded into an empty topping repository and pizzas only into an empty pizza
// repository, so running it on every start is safe.
func SeedCatalog(
	ctx context.Context,
	pizzas ports.PizzaRepository,
	toppings ports.ToppingRepository,
	ids kernel.IDGenerator,
	clock kernel.Clock,
	logger *slog.Logger,
) error {
	existing, err := toppings.FindAll(ctx)
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		for _, st := range sampleToppings {
			t, err := pizza.NewTopping(ids.NewID(), st.name, mustMoney(st.price), st.allergens, true)
			if err != nil {
				return err
			}
			if _, err = toppings.Save(ctx, t); err != nil {
				return err
			}
			existing = append(existing, t)
		}
		logger.InfoContext(ctx, "catalog toppings seeded", "count", len(sampleToppings))
	}

	menu, err := pizzas.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(menu) > 0 {
		return nil
	}

	byName := make(map[string]*pizza.Topping, len(existing))
	for _, t := range existing {
		byName[t.Name()] = t
	}

	for _, sp := range samplePizzas {
		selected := make([]*pizza.Topping, 0, len(sp.toppings))
		for _, name := range sp.toppings {
			t, ok := byName[name]
			if !ok {
				return fmt.Errorf("seed pizza %s: topping %s is missing from the catalog", sp.name, name)
			}
			selected = append(selected, t)
		}

		p, err := pizza.NewPizza(
			ids.NewID(),
			sp.name,
			mustMoney(sp.basePrice),
			pizza.Medium,
			pizza.DefaultBaseAllergens(),
			selected,
			clock.Now(),
		)
		if err != nil {
			return err
		}
		if _, err = pizzas.Save(ctx, p); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "catalog pizzas seeded", "count", len(samplePizzas))
	return nil
}

func mustMoney(amount string) kernel.Money {
	m, err := kernel.MoneyFromString(amount)
	if err != nil {
		panic(err)
	}
	return m
}
