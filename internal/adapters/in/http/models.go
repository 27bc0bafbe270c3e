package http

import (
	"encoding/json"
	"time"

	"pizzeria/internal/core/application/usecases"
	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/pizza"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// Request bodies. Identifiers stay strings here and are parsed by the handlers, so a
// malformed id is reported like any other invalid value.

type CreatePizzaRequest struct {
	Name       string          `json:"name" validate:"required"`
	BasePrice  decimal.Decimal `json:"basePrice"`
	Size       string          `json:"size" validate:"required"`
	ToppingIDs []string        `json:"toppingIds"`
}

type PizzaToppingRequest struct {
	PizzaID   string `json:"pizzaId" validate:"required"`
	ToppingID string `json:"toppingId" validate:"required"`
}

type ToppingAvailabilityRequest struct {
	ToppingID string `json:"toppingId" validate:"required"`
	Available *bool  `json:"available" validate:"required"`
}

type CheckAllergensRequest struct {
	PizzaID   string   `json:"pizzaId" validate:"required"`
	Allergens []string `json:"allergens" validate:"required"`
}

type CreateOrderRequest struct {
	CustomerID string `json:"customerId" validate:"required"`
}

type OrderRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

// OrderItemRequest serves add-pizza, remove-pizza and update-quantity. A missing quantity
// means 1 when adding.
type OrderItemRequest struct {
	OrderID  string `json:"orderId" validate:"required"`
	PizzaID  string `json:"pizzaId" validate:"required"`
	Quantity *int   `json:"quantity"`
}

type AddressBody struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type DeliveryAddressRequest struct {
	OrderID string       `json:"orderId" validate:"required"`
	Address *AddressBody `json:"address" validate:"required"`
}

type PaymentBody struct {
	Method         string `json:"method" validate:"required"`
	CardNumber     string `json:"cardNumber"`
	CardHolder     string `json:"cardHolder"`
	ExpirationDate string `json:"expirationDate"`
	CVV            string `json:"cvv"`
	BillingAddress string `json:"billingAddress"`
}

type PaymentRequest struct {
	OrderID string       `json:"orderId" validate:"required"`
	Payment *PaymentBody `json:"payment" validate:"required"`
}

type OrderStatusRequest struct {
	OrderID string `json:"orderId" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

type UpdateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type AllergyBody struct {
	Name     string `json:"name" validate:"required"`
	Severity string `json:"severity"`
	Notes    string `json:"notes"`
}

type AddAllergyRequest struct {
	CustomerID string       `json:"customerId" validate:"required"`
	Allergy    *AllergyBody `json:"allergy" validate:"required"`
}

type RemoveAllergyRequest struct {
	CustomerID  string `json:"customerId" validate:"required"`
	AllergyName string `json:"allergyName" validate:"required"`
}

// Responses. Money is rendered as a JSON number with two decimals.

type ToppingResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	Allergens []string    `json:"allergens"`
	Available bool        `json:"available"`
}

type PizzaResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	BasePrice json.Number       `json:"basePrice"`
	Size      string            `json:"size"`
	Toppings  []ToppingResponse `json:"toppings"`
	Allergens []string          `json:"allergens"`
	Price     json.Number       `json:"price"`
	CreatedAt time.Time         `json:"createdAt"`
}

type AllergenCheckResponse struct {
	HasConflicts bool     `json:"hasConflicts"`
	Conflicts    []string `json:"conflicts"`
}

type OrderItemResponse struct {
	PizzaID   string      `json:"pizzaId"`
	PizzaName string      `json:"pizzaName"`
	Size      string      `json:"size"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"`
	Allergens []string    `json:"allergens"`
}

type PaymentResponse struct {
	Method         string `json:"method"`
	CardNumber     string `json:"cardNumber,omitempty"`
	CardHolder     string `json:"cardHolder,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	BillingAddress string `json:"billingAddress,omitempty"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customerId"`
	Items           []OrderItemResponse `json:"items"`
	DeliveryAddress *AddressBody        `json:"deliveryAddress,omitempty"`
	Payment         *PaymentResponse    `json:"payment,omitempty"`
	Status          string              `json:"status"`
	Total           json.Number         `json:"total"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

type OrderTotalResponse struct {
	OrderID string      `json:"orderId"`
	Total   json.Number `json:"total"`
}

type AllergyResponse struct {
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Notes    string `json:"notes,omitempty"`
}

type CustomerResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Allergies []AllergyResponse `json:"allergies"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func money(m kernel.Money) json.Number {
	return json.Number(m.String())
}

func toToppingResponse(t *pizza.Topping) ToppingResponse {
	return ToppingResponse{
		ID:        t.ID().String(),
		Name:      t.Name(),
		Price:     money(t.Price()),
		Allergens: t.Allergens(),
		Available: t.IsAvailable(),
	}
}

func toToppingResponses(toppings []*pizza.Topping) []ToppingResponse {
	out := make([]ToppingResponse, 0, len(toppings))
	for _, t := range toppings {
		out = append(out, toToppingResponse(t))
	}
	return out
}

func toPizzaResponse(p *pizza.Pizza) PizzaResponse {
	return PizzaResponse{
		ID:        p.ID().String(),
		Name:      p.Name(),
		BasePrice: money(p.BasePrice()),
		Size:      p.Size().String(),
		Toppings:  toToppingResponses(p.Toppings()),
		Allergens: p.Allergens(),
		Price:     money(p.CalculatePrice()),
		CreatedAt: p.CreatedAt(),
	}
}

func toPizzaResponses(pizzas []*pizza.Pizza) []PizzaResponse {
	out := make([]PizzaResponse, 0, len(pizzas))
	for _, p := range pizzas {
		out = append(out, toPizzaResponse(p))
	}
	return out
}

func toAllergenCheckResponse(check usecases.AllergenCheck) AllergenCheckResponse {
	conflicts := check.Conflicts
	if conflicts == nil {
		conflicts = []string{}
	}
	return AllergenCheckResponse{
		HasConflicts: check.HasConflicts,
		Conflicts:    conflicts,
	}
}

func toOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, OrderItemResponse{
			PizzaID:   it.PizzaID().String(),
			PizzaName: it.Pizza().Name(),
			Size:      it.Pizza().Size().String(),
			Quantity:  it.Quantity(),
			Price:     money(it.Price()),
			Allergens: it.Pizza().Allergens(),
		})
	}

	resp := OrderResponse{
		ID:         o.ID().String(),
		CustomerID: o.CustomerID().String(),
		Items:      items,
		Status:     o.Status().String(),
		Total:      money(o.CalculateTotal()),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	}

	if a := o.DeliveryAddress(); a != nil {
		resp.DeliveryAddress = &AddressBody{
			Street:       a.Street(),
			City:         a.City(),
			State:        a.State(),
			ZipCode:      a.ZipCode(),
			Country:      a.Country(),
			Instructions: a.Instructions(),
		}
	}

	if p := o.Payment(); p != nil {
		resp.Payment = &PaymentResponse{
			Method:         string(p.Method()),
			CardNumber:     p.CardNumber(),
			CardHolder:     p.CardHolder(),
			ExpirationDate: p.ExpirationDate(),
			BillingAddress: p.BillingAddress(),
		}
	}

	return resp
}

func toOrderResponses(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toAllergyResponses(allergies []customer.Allergy) []AllergyResponse {
	out := make([]AllergyResponse, 0, len(allergies))
	for _, a := range allergies {
		out = append(out, AllergyResponse{
			Name:     a.Name(),
			Severity: a.Severity().String(),
			Notes:    a.Notes(),
		})
	}
	return out
}

func toCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID().String(),
		Name:      c.Name(),
		Email:     c.Email(),
		Phone:     c.Phone(),
		Allergies: toAllergyResponses(c.Allergies()),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}
