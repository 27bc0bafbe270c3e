package usecases_test

import (
	"log/slog"
	"testing"
	"time"

	"pizzeria/internal/adapters/out/masking"
	"pizzeria/internal/adapters/out/memory"
	"pizzeria/internal/core/application/usecases"
	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/pizza"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	pizzaRepo    *memory.PizzaRepository
	toppingRepo  *memory.ToppingRepository
	customerRepo *memory.CustomerRepository
	orderRepo    *memory.OrderRepository

	pizzas    *usecases.PizzaService
	customers *usecases.CustomerService
	orders    *usecases.OrderService
}

func newFixture() *fixture {
	logger := slog.New(slog.DiscardHandler)
	ids := kernel.NewRandomIDGenerator()
	clock := kernel.NewFixedClock(now)

	f := &fixture{
		pizzaRepo:    memory.NewPizzaRepository(),
		toppingRepo:  memory.NewToppingRepository(),
		customerRepo: memory.NewCustomerRepository(masking.NewMarkerMasker()),
		orderRepo:    memory.NewOrderRepository(),
	}
	f.pizzas = usecases.NewPizzaService(f.pizzaRepo, f.toppingRepo, ids, clock, logger)
	f.customers = usecases.NewCustomerService(f.customerRepo, ids, clock, logger)
	f.orders = usecases.NewOrderService(f.orderRepo, f.pizzaRepo, f.customerRepo, ids, clock, logger)
	return f
}

func (f *fixture) topping(t *testing.T, name string, price float64, available bool, allergens ...string) *pizza.Topping {
	t.Helper()
	tp, err := pizza.NewTopping(kernel.NewUUID(), name, kernel.MoneyFromFloat(price), allergens, available)
	require.NoError(t, err)
	_, err = f.toppingRepo.Save(t.Context(), tp)
	require.NoError(t, err)
	return tp
}

func (f *fixture) pizza(t *testing.T, name string, basePrice float64, toppings ...*pizza.Topping) *pizza.Pizza {
	t.Helper()
	p, err := pizza.NewPizza(kernel.NewUUID(), name, kernel.MoneyFromFloat(basePrice), pizza.Medium,
		pizza.DefaultBaseAllergens(), toppings, now)
	require.NoError(t, err)
	_, err = f.pizzaRepo.Save(t.Context(), p)
	require.NoError(t, err)
	return p
}

func (f *fixture) customer(t *testing.T, email string, allergies ...string) *customer.Customer {
	t.Helper()
	ctx := t.Context()
	c, err := f.customers.CreateCustomer(ctx, usecases.CustomerInput{Name: "Ada", Email: email, Phone: "555-0100"})
	require.NoError(t, err)
	for _, name := range allergies {
		c, err = f.customers.AddAllergy(ctx, c.ID(), usecases.AllergyInput{Name: name, Severity: customer.Severe})
		require.NoError(t, err)
	}
	return c
}

// readyOrder returns a pending order holding one unit of each pizza with address and
// payment set, so only the allergen check stands between it and confirmation.
func (f *fixture) readyOrder(t *testing.T, c *customer.Customer, pizzas ...*pizza.Pizza) *order.Order {
	t.Helper()
	ctx := t.Context()

	o, err := f.orders.CreateOrder(ctx, c.ID())
	require.NoError(t, err)
	for _, p := range pizzas {
		o, err = f.orders.AddPizzaToOrder(ctx, o.ID(), p.ID(), 1)
		require.NoError(t, err)
	}
	o, err = f.orders.SetDeliveryAddress(ctx, o.ID(), validAddress())
	require.NoError(t, err)
	o, err = f.orders.SetPayment(ctx, o.ID(), validCard())
	require.NoError(t, err)
	return o
}

func validAddress() usecases.AddressInput {
	return usecases.AddressInput{
		Street:  "1 Main St",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62704",
	}
}

func validCard() usecases.PaymentInput {
	return usecases.PaymentInput{
		Method:         order.CreditCard,
		CardNumber:     "4111 1111 1111 1234",
		CardHolder:     "Ada Lovelace",
		ExpirationDate: "12/29",
		CVV:            "123",
	}
}
