package http_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pizzeria/api"
	pizzahttp "pizzeria/internal/adapters/in/http"
	"pizzeria/internal/adapters/out/masking"
	"pizzeria/internal/adapters/out/memory"
	"pizzeria/internal/core/application/usecases"
	"pizzeria/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type testAPI struct {
	e *echo.Echo
}

// newTestAPI serves the seeded catalog from memory with OpenAPI validation switched on.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	ids := kernel.NewRandomIDGenerator()
	clock := kernel.NewFixedClock(now)

	pizzaRepo := memory.NewPizzaRepository()
	toppingRepo := memory.NewToppingRepository()
	customerRepo := memory.NewCustomerRepository(masking.NewMarkerMasker())
	orderRepo := memory.NewOrderRepository()

	require.NoError(t, usecases.SeedCatalog(t.Context(), pizzaRepo, toppingRepo, ids, clock, logger))

	doc, err := api.Load(t.Context())
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	server := pizzahttp.NewServer(
		usecases.NewPizzaService(pizzaRepo, toppingRepo, ids, clock, logger),
		usecases.NewOrderService(orderRepo, pizzaRepo, customerRepo, ids, clock, logger),
		usecases.NewCustomerService(customerRepo, ids, clock, logger),
		pizzahttp.NewMetrics(registry),
		clock,
	)

	e, err := pizzahttp.NewRouter(server, pizzahttp.RouterConfig{
		Logger:   logger,
		Gatherer: registry,
		Doc:      doc,
	})
	require.NoError(t, err)

	return &testAPI{e: e}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (a *testAPI) pizzaByName(t *testing.T, name string) pizzahttp.PizzaResponse {
	t.Helper()
	rec := a.do(t, http.MethodGet, "/api/pizzas?name="+name, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pizzas := decode[[]pizzahttp.PizzaResponse](t, rec)
	require.Len(t, pizzas, 1)
	return pizzas[0]
}

func (a *testAPI) createCustomer(t *testing.T, email string) pizzahttp.CustomerResponse {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/customers", map[string]any{
		"name":  "Jane Doe",
		"email": email,
		"phone": "+1 555 0100",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[pizzahttp.CustomerResponse](t, rec)
}

func (a *testAPI) createOrder(t *testing.T, customerID string) pizzahttp.OrderResponse {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/orders", map[string]any{"customerId": customerID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[pizzahttp.OrderResponse](t, rec)
}

func (a *testAPI) completeCheckout(t *testing.T, orderID string) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/orders/delivery-address", map[string]any{
		"orderId": orderID,
		"address": map[string]any{
			"street":  "1 Main St",
			"city":    "Springfield",
			"state":   "IL",
			"zipCode": "62704",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(t, http.MethodPost, "/api/orders/payment", map[string]any{
		"orderId": orderID,
		"payment": map[string]any{
			"method":         "credit_card",
			"cardNumber":     "4111 1111 1111 1234",
			"cardHolder":     "Jane Doe",
			"expirationDate": "12/29",
			"cvv":            "123",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "2024-03-01T10:00:00Z", body["timestamp"])
}

func TestIndex_ListsEndpoints(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/api", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Contains(t, body["endpoints"], "orders")
}

func TestPizzaEndpoints(t *testing.T) {
	t.Run("lists the seeded menu", func(t *testing.T) {
		// Given
		a := newTestAPI(t)

		// When
		rec := a.do(t, http.MethodGet, "/api/pizzas", nil)

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		pizzas := decode[[]pizzahttp.PizzaResponse](t, rec)
		require.Len(t, pizzas, 3)
		assert.Equal(t, "Margherita", pizzas[0].Name)
		assert.Equal(t, json.Number("11.69"), pizzas[0].Price)
		assert.Equal(t, []string{"dairy", "gluten"}, pizzas[0].Allergens)
	})

	t.Run("searches by name ignoring case", func(t *testing.T) {
		a := newTestAPI(t)

		p := a.pizzaByName(t, "pepp")

		assert.Equal(t, "Pepperoni", p.Name)
		assert.Equal(t, json.Number("16.24"), p.Price)
		assert.Equal(t, []string{"dairy", "gluten", "pork"}, p.Allergens)
	})

	t.Run("gets a pizza by id", func(t *testing.T) {
		a := newTestAPI(t)
		p := a.pizzaByName(t, "margherita")

		rec := a.do(t, http.MethodGet, "/api/pizzas/"+p.ID, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, p.ID, decode[pizzahttp.PizzaResponse](t, rec).ID)
	})

	t.Run("unknown pizza is 404", func(t *testing.T) {
		a := newTestAPI(t)

		rec := a.do(t, http.MethodGet, "/api/pizzas/"+kernel.NewUUID().String(), nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, http.StatusNotFound, decode[pizzahttp.Error](t, rec).Code)
	})

	t.Run("malformed pizza id is 400", func(t *testing.T) {
		a := newTestAPI(t)

		rec := a.do(t, http.MethodGet, "/api/pizzas/not-a-uuid", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("creates a custom pizza from available toppings", func(t *testing.T) {
		// Given
		a := newTestAPI(t)
		rec := a.do(t, http.MethodGet, "/api/pizzas/toppings/available", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		toppings := decode[[]pizzahttp.ToppingResponse](t, rec)
		require.Len(t, toppings, 10)

		var bacon pizzahttp.ToppingResponse
		for _, tp := range toppings {
			if tp.Name == "Bacon" {
				bacon = tp
			}
		}
		require.NotEmpty(t, bacon.ID)

		// When
		rec = a.do(t, http.MethodPost, "/api/pizzas", map[string]any{
			"name":       "Breakfast",
			"basePrice":  10,
			"size":       "large",
			"toppingIds": []string{bacon.ID},
		})

		// Then
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		p := decode[pizzahttp.PizzaResponse](t, rec)
		assert.Equal(t, "large", p.Size)
		assert.Equal(t, json.Number("18.40"), p.Price)
		assert.Equal(t, []string{"dairy", "gluten", "pork"}, p.Allergens)
	})

	t.Run("missing fields are reported together", func(t *testing.T) {
		a := newTestAPI(t)

		rec := a.do(t, http.MethodPost, "/api/pizzas", map[string]any{"basePrice": 10})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[pizzahttp.Error](t, rec)
		assert.GreaterOrEqual(t, len(body.Details), 2)
	})

	t.Run("switched off topping is rejected", func(t *testing.T) {
		// Given
		a := newTestAPI(t)
		p := a.pizzaByName(t, "margherita")
		toppings := decode[[]pizzahttp.ToppingResponse](t, a.do(t, http.MethodGet, "/api/pizzas/toppings/available", nil))
		onions := toppings[5]
		require.Equal(t, "Onions", onions.Name)

		rec := a.do(t, http.MethodPost, "/api/pizzas/toppings/availability", map[string]any{
			"toppingId": onions.ID,
			"available": false,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.False(t, decode[pizzahttp.ToppingResponse](t, rec).Available)

		// When
		rec = a.do(t, http.MethodPost, "/api/pizzas/add-topping", map[string]any{
			"pizzaId":   p.ID,
			"toppingId": onions.ID,
		})

		// Then
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	})

	t.Run("checks allergens", func(t *testing.T) {
		a := newTestAPI(t)
		p := a.pizzaByName(t, "pepp")

		rec := a.do(t, http.MethodPost, "/api/pizzas/check-allergens", map[string]any{
			"pizzaId":   p.ID,
			"allergens": []string{"Pork", "shellfish"},
		})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		check := decode[pizzahttp.AllergenCheckResponse](t, rec)
		assert.True(t, check.HasConflicts)
		assert.Equal(t, []string{"Pork"}, check.Conflicts)
	})
}

func TestOrderFlow(t *testing.T) {
	// Given
	a := newTestAPI(t)
	c := a.createCustomer(t, "jane@example.com")
	o := a.createOrder(t, c.ID)
	assert.Equal(t, "pending", o.Status)
	assert.Empty(t, o.Items)
	margherita := a.pizzaByName(t, "margherita")

	// When: the cart is filled
	rec := a.do(t, http.MethodPost, "/api/orders/add-pizza", map[string]any{
		"orderId": o.ID,
		"pizzaId": margherita.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	o = decode[pizzahttp.OrderResponse](t, rec)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 1, o.Items[0].Quantity)

	rec = a.do(t, http.MethodPost, "/api/orders/update-quantity", map[string]any{
		"orderId":  o.ID,
		"pizzaId":  margherita.ID,
		"quantity": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(t, http.MethodGet, "/api/orders/"+o.ID+"/total", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, json.Number("23.37"), decode[pizzahttp.OrderTotalResponse](t, rec).Total)

	// When: checkout data is given and the order confirmed
	a.completeCheckout(t, o.ID)
	rec = a.do(t, http.MethodPost, "/api/orders/confirm", map[string]any{"orderId": o.ID})

	// Then
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	confirmed := decode[pizzahttp.OrderResponse](t, rec)
	assert.Equal(t, "confirmed", confirmed.Status)
	require.NotNil(t, confirmed.Payment)
	assert.Equal(t, "**** **** **** 1234", confirmed.Payment.CardNumber)
	require.NotNil(t, confirmed.DeliveryAddress)
	assert.Equal(t, "USA", confirmed.DeliveryAddress.Country)
	assert.NotContains(t, rec.Body.String(), "4111")
	assert.NotContains(t, rec.Body.String(), "cvv")

	rec = a.do(t, http.MethodGet, "/api/orders?status=confirmed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]pizzahttp.OrderResponse](t, rec), 1)

	rec = a.do(t, http.MethodGet, "/api/orders/customer/"+c.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]pizzahttp.OrderResponse](t, rec), 1)

	// Then: the kitchen moves it along and the transition is counted
	rec = a.do(t, http.MethodPost, "/api/orders/status", map[string]any{"orderId": o.ID, "status": "preparing"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "preparing", decode[pizzahttp.OrderResponse](t, rec).Status)

	rec = a.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pizzeria_order_transitions_total{status="confirmed"} 1`)
	assert.Contains(t, rec.Body.String(), `pizzeria_order_transitions_total{status="preparing"} 1`)
}

func TestOrderEndpoints_Failures(t *testing.T) {
	t.Run("incomplete order cannot be confirmed", func(t *testing.T) {
		// Given
		a := newTestAPI(t)
		c := a.createCustomer(t, "jane@example.com")
		o := a.createOrder(t, c.ID)

		// When
		rec := a.do(t, http.MethodPost, "/api/orders/confirm", map[string]any{"orderId": o.ID})

		// Then
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		body := decode[pizzahttp.Error](t, rec)
		assert.Len(t, body.Details, 3)
	})

	t.Run("allergen conflict blocks confirmation", func(t *testing.T) {
		// Given
		a := newTestAPI(t)
		c := a.createCustomer(t, "jane@example.com")
		rec := a.do(t, http.MethodPost, "/api/customers/allergies/add", map[string]any{
			"customerId": c.ID,
			"allergy":    map[string]any{"name": "Pork", "severity": "severe"},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		o := a.createOrder(t, c.ID)
		rec = a.do(t, http.MethodPost, "/api/orders/add-pizza", map[string]any{
			"orderId": o.ID,
			"pizzaId": a.pizzaByName(t, "pepp").ID,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		a.completeCheckout(t, o.ID)

		// When
		rec = a.do(t, http.MethodPost, "/api/orders/confirm", map[string]any{"orderId": o.ID})

		// Then
		require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
		rec = a.do(t, http.MethodGet, "/api/orders/"+o.ID, nil)
		assert.Equal(t, "pending", decode[pizzahttp.OrderResponse](t, rec).Status)
	})

	t.Run("order for unknown customer is 404", func(t *testing.T) {
		a := newTestAPI(t)

		rec := a.do(t, http.MethodPost, "/api/orders", map[string]any{"customerId": kernel.NewUUID().String()})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("status query is required", func(t *testing.T) {
		a := newTestAPI(t)

		rec := a.do(t, http.MethodGet, "/api/orders", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delivered order cannot be cancelled", func(t *testing.T) {
		// Given
		a := newTestAPI(t)
		c := a.createCustomer(t, "jane@example.com")
		o := a.createOrder(t, c.ID)
		rec := a.do(t, http.MethodPost, "/api/orders/status", map[string]any{"orderId": o.ID, "status": "delivered"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		// When
		rec = a.do(t, http.MethodPost, "/api/orders/cancel", map[string]any{"orderId": o.ID})

		// Then
		assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	})

	t.Run("cancel is repeatable", func(t *testing.T) {
		a := newTestAPI(t)
		c := a.createCustomer(t, "jane@example.com")
		o := a.createOrder(t, c.ID)

		for range 2 {
			rec := a.do(t, http.MethodPost, "/api/orders/cancel", map[string]any{"orderId": o.ID})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "cancelled", decode[pizzahttp.OrderResponse](t, rec).Status)
		}
	})
}

func TestCustomerEndpoints(t *testing.T) {
	t.Run("duplicate email is a conflict", func(t *testing.T) {
		a := newTestAPI(t)
		a.createCustomer(t, "jane@example.com")

		rec := a.do(t, http.MethodPost, "/api/customers", map[string]any{
			"name":  "Other Jane",
			"email": "JANE@example.com",
			"phone": "+1 555 0101",
		})

		assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	})

	t.Run("invalid email is 400", func(t *testing.T) {
		a := newTestAPI(t)

		rec := a.do(t, http.MethodPost, "/api/customers", map[string]any{
			"name":  "Jane",
			"email": "not-an-email",
			"phone": "+1 555 0100",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})

	t.Run("updates the profile partially", func(t *testing.T) {
		// Given
		a := newTestAPI(t)
		c := a.createCustomer(t, "jane@example.com")

		// When
		rec := a.do(t, http.MethodPut, "/api/customers/"+c.ID, map[string]any{"phone": "+1 555 0199"})

		// Then
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decode[pizzahttp.CustomerResponse](t, rec)
		assert.Equal(t, "+1 555 0199", updated.Phone)
		assert.Equal(t, "jane@example.com", updated.Email)
	})

	t.Run("allergies round trip in plain form", func(t *testing.T) {
		// Given
		a := newTestAPI(t)
		c := a.createCustomer(t, "jane@example.com")

		// When
		rec := a.do(t, http.MethodPost, "/api/customers/allergies/add", map[string]any{
			"customerId": c.ID,
			"allergy":    map[string]any{"name": "Peanuts", "notes": "carries an EpiPen"},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		// Then
		rec = a.do(t, http.MethodGet, "/api/customers/"+c.ID+"/allergies", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		allergies := decode[[]pizzahttp.AllergyResponse](t, rec)
		require.Len(t, allergies, 1)
		assert.Equal(t, "Peanuts", allergies[0].Name)
		assert.Equal(t, "moderate", allergies[0].Severity)
		assert.Equal(t, "carries an EpiPen", allergies[0].Notes)

		rec = a.do(t, http.MethodPost, "/api/customers/allergies/remove", map[string]any{
			"customerId":  c.ID,
			"allergyName": "peanuts",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Empty(t, decode[pizzahttp.CustomerResponse](t, rec).Allergies)
	})

	t.Run("unknown customer is 404", func(t *testing.T) {
		a := newTestAPI(t)

		rec := a.do(t, http.MethodGet, "/api/customers/"+kernel.NewUUID().String(), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUnknownRoute(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/api/nothing-here", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decode[pizzahttp.Error](t, rec).Code)
}

func TestSwaggerDoc(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/swagger/doc.json", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"openapi":"3.0.3"`)
}
