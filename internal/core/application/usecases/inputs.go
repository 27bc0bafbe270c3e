package usecases

import (
	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/pizza"
)

// CustomPizzaInput describes a pizza assembled by a customer.
type CustomPizzaInput struct {
	Name       string
	BasePrice  kernel.Money
	Size       pizza.Size
	ToppingIDs []kernel.UUID
}

// AllergenCheck is the result of PizzaService.CheckAllergens.
type AllergenCheck struct {
	HasConflicts bool
	Conflicts    []string
}

// CustomerInput carries registration data.
type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

// CustomerUpdate carries a partial profile update. Empty fields are left untouched.
type CustomerUpdate struct {
	Name  string
	Email string
	Phone string
}

// AllergyInput is an allergy as entered by the customer. A blank severity means moderate.
type AllergyInput struct {
	Name     string
	Severity customer.Severity
	Notes    string
}

// AddressInput is a delivery address as entered by the customer.
// A blank country defaults to USA.
type AddressInput struct {
	Street       string
	City         string
	State        string
	ZipCode      string
	Country      string
	Instructions string
}

// PaymentInput is the raw payment data. It is masked before it reaches the order.
type PaymentInput struct {
	Method         order.PaymentMethod
	CardNumber     string
	CardHolder     string
	ExpirationDate string
	CVV            string
	BillingAddress string
}

func (in PaymentInput) details() order.PaymentDetails {
	return order.PaymentDetails{
		Method:         in.Method,
		CardNumber:     in.CardNumber,
		CardHolder:     in.CardHolder,
		ExpirationDate: in.ExpirationDate,
		CVV:            in.CVV,
		BillingAddress: in.BillingAddress,
	}
}

// OrderTotal is the result of OrderService.GetOrderTotal.
type OrderTotal struct {
	OrderID kernel.UUID
	Total   kernel.Money
}

// RefreshResult summarises one run of OrderService.RefreshPendingOrderPrices.
type RefreshResult struct {
	OrdersScanned int
	OrdersUpdated int
	OrdersSkipped int
	ItemsRepriced int
}
