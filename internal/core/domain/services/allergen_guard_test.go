package services_test

import (
	"testing"
	"time"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/pizza"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newPizza(t *testing.T, name string, toppingAllergens ...string) *pizza.Pizza {
	t.Helper()
	var toppings []*pizza.Topping
	if len(toppingAllergens) > 0 {
		tp, err := pizza.NewTopping(kernel.NewUUID(), "Topping", kernel.MoneyFromFloat(1), toppingAllergens, true)
		require.NoError(t, err)
		toppings = append(toppings, tp)
	}
	p, err := pizza.NewPizza(kernel.NewUUID(), name, kernel.MoneyFromFloat(9), pizza.Medium,
		pizza.DefaultBaseAllergens(), toppings, now)
	require.NoError(t, err)
	return p
}

func newCustomer(t *testing.T, allergies ...string) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(kernel.NewUUID(), "Ada", "ada@example.com", "555", now)
	require.NoError(t, err)
	for _, name := range allergies {
		a, err := customer.NewAllergy(name, customer.Severe, "")
		require.NoError(t, err)
		require.NoError(t, c.AddAllergy(a, now))
	}
	return c
}

func newOrder(t *testing.T, c *customer.Customer, pizzas ...*pizza.Pizza) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), c.ID(), now)
	require.NoError(t, err)
	for _, p := range pizzas {
		require.NoError(t, o.AddItem(p, 1, now))
	}
	return o
}

func TestAllergenGuard_PizzaConflicts(t *testing.T) {
	guard := services.NewAllergenGuard()
	p := newPizza(t, "Pepperoni", "pork")

	t.Run("returns the matching subset in input order", func(t *testing.T) {
		got := guard.PizzaConflicts(p, []string{"peanuts", "pork", "gluten"})

		assert.Equal(t, []string{"pork", "gluten"}, got)
	})

	t.Run("no match yields an empty list", func(t *testing.T) {
		got := guard.PizzaConflicts(p, []string{"shellfish"})

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestAllergenGuard_Check(t *testing.T) {
	guard := services.NewAllergenGuard()

	t.Run("should pass when customer has no allergies", func(t *testing.T) {
		c := newCustomer(t)
		o := newOrder(t, c, newPizza(t, "Pepperoni", "pork"))

		assert.NoError(t, guard.Check(o, c))
	})

	t.Run("should pass when the intersection is empty", func(t *testing.T) {
		c := newCustomer(t, "shellfish", "peanuts")
		o := newOrder(t, c, newPizza(t, "Pepperoni", "pork"), newPizza(t, "Margherita"))

		assert.NoError(t, guard.Check(o, c))
	})

	t.Run("should report topping allergens", func(t *testing.T) {
		// Given
		c := newCustomer(t, "pork")
		o := newOrder(t, c, newPizza(t, "Margherita"), newPizza(t, "Pepperoni", "pork"))

		// When
		err := guard.Check(o, c)

		// Then
		require.ErrorIs(t, err, services.ErrAllergenConflict)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "Pepperoni contains pork")
		assert.NotContains(t, err.Error(), "Margherita")
	})

	t.Run("should report base allergens", func(t *testing.T) {
		c := newCustomer(t, "Gluten")
		o := newOrder(t, c, newPizza(t, "Margherita"))

		conflicts, err := guard.OrderConflicts(o, c)

		require.NoError(t, err)
		require.Len(t, conflicts, 1)
		assert.Equal(t, "Gluten", conflicts[0].Allergen)
		assert.Equal(t, customer.Severe, conflicts[0].Severity)
		assert.Equal(t, "Margherita", conflicts[0].PizzaName)
	})

	t.Run("should use the order snapshot, not the catalog", func(t *testing.T) {
		c := newCustomer(t, "celery")
		p := newPizza(t, "Plain")
		o := newOrder(t, c, p)

		tp, err := pizza.NewTopping(kernel.NewUUID(), "Celery", kernel.MoneyFromFloat(1), []string{"celery"}, true)
		require.NoError(t, err)
		require.NoError(t, p.AddTopping(tp))

		assert.NoError(t, guard.Check(o, c))
	})

	t.Run("should reject unconstructed aggregates", func(t *testing.T) {
		c := newCustomer(t)

		err := guard.Check(&order.Order{}, c)

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
