package order

import (
	"errors"
	"slices"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/pizza"
	"pizzeria/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the checkout workflow. It starts as a pending shopping
// cart, collects a delivery address and a payment, and is then confirmed or cancelled.
//
// Order follows these invariants:
//   - Items are unique by pizza id and have a quantity of at least 1
//   - Every item price is its pizza snapshot price times its quantity, as of the
//     last mutation of that item
//   - Status transitions follow the rules of Status
//   - Every mutation sets updatedAt to the instant supplied by the caller
//
// Order is not safe for concurrent use. Repositories hand out independent copies, so
// changes become visible to others only through an explicit Update.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID is the owner of the order; required for confirmation
	customerID kernel.UUID

	// items are the cart lines in insertion order
	items []Item

	// deliveryAddress and payment are nil until set
	deliveryAddress *DeliveryAddress
	payment         *Payment

	status    Status
	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates an empty pending order for the customer.
//
// Example:
//
//	o, err := order.NewOrder(ids.NewID(), customer.ID(), clock.Now())
//	if err != nil {
//	    // Handle validation error
//	}
//	err = o.AddItem(margherita, 2, clock.Now())
//
// The customer id is checked for presence at confirmation time, not here.
func NewOrder(id kernel.UUID, customerID kernel.UUID, now time.Time) (*Order, error) {
	return RestoreOrder(id, customerID, nil, nil, nil, Pending, now, now)
}

// RestoreOrder rebuilds an order from persisted state.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []Item,
	deliveryAddress *DeliveryAddress,
	payment *Payment,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		customerID:    customerID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errs.Validate("order",
		o.setID(id),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		o.setPayment(payment),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns copies of the cart lines in insertion order.
func (o *Order) Items() []Item {
	out := make([]Item, 0, len(o.items))
	for _, it := range o.items {
		out = append(out, it.clone())
	}
	return out
}

// Item returns the line for pizzaID, if present.
func (o *Order) Item(pizzaID kernel.UUID) (Item, bool) {
	if i := o.indexOf(pizzaID); i >= 0 {
		return o.items[i].clone(), true
	}
	return Item{}, false
}

// DeliveryAddress returns nil until an address is set.
func (o *Order) DeliveryAddress() *DeliveryAddress {
	if o.deliveryAddress == nil {
		return nil
	}
	a := *o.deliveryAddress
	return &a
}

// Payment returns nil until a payment is set.
func (o *Order) Payment() *Payment {
	if o.payment == nil {
		return nil
	}
	p := *o.payment
	return &p
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AddItem puts quantity units of p into the cart. If the pizza is already in the cart its
// quantity grows by quantity, and both snapshot and price are refreshed from p.
//
// Adding the same pizza twice with quantity 1 is the same as adding it once with quantity 2.
func (o *Order) AddItem(p *pizza.Pizza, quantity int, now time.Time) error {
	if err := errs.Validate("order item", p.Validate(), validateQuantity(quantity)); err != nil {
		return err
	}

	if i := o.indexOf(p.ID()); i >= 0 {
		o.items[i] = newItem(p, o.items[i].quantity+quantity)
	} else {
		o.items = append(o.items, newItem(p, quantity))
	}

	o.updatedAt = now
	return nil
}

// RemoveItem drops the line for pizzaID. A missing line is not an error.
func (o *Order) RemoveItem(pizzaID kernel.UUID, now time.Time) {
	o.items = slices.DeleteFunc(o.items, func(it Item) bool {
		return it.PizzaID().IsEqual(pizzaID)
	})
	o.updatedAt = now
}

// UpdateItemQuantity sets the quantity of the line for pizzaID and re-prices it from its
// own snapshot. A quantity of 0 or less behaves exactly like RemoveItem. Updating a
// missing line to a positive quantity leaves the order unchanged.
func (o *Order) UpdateItemQuantity(pizzaID kernel.UUID, quantity int, now time.Time) {
	if quantity <= 0 {
		o.RemoveItem(pizzaID, now)
		return
	}

	i := o.indexOf(pizzaID)
	if i < 0 {
		return
	}

	o.items[i] = newItem(o.items[i].pizza, quantity)
	o.updatedAt = now
}

// RepriceItem replaces the snapshot of the line holding p with p and recomputes its price
// for the current quantity. It reports whether such a line exists. Snapshots are never
// refreshed implicitly; this is the explicit recompute.
func (o *Order) RepriceItem(p *pizza.Pizza, now time.Time) bool {
	if p.Validate() != nil {
		return false
	}

	i := o.indexOf(p.ID())
	if i < 0 {
		return false
	}

	o.items[i] = newItem(p, o.items[i].quantity)
	o.updatedAt = now
	return true
}

func (o *Order) SetDeliveryAddress(address DeliveryAddress, now time.Time) error {
	if err := o.setDeliveryAddress(&address); err != nil {
		return err
	}
	o.updatedAt = now
	return nil
}

func (o *Order) SetPayment(payment Payment, now time.Time) error {
	if err := o.setPayment(&payment); err != nil {
		return err
	}
	o.updatedAt = now
	return nil
}

// CalculateTotal sums the item prices. An empty order totals 0.
func (o *Order) CalculateTotal() kernel.Money {
	total := kernel.ZeroMoney()
	for _, it := range o.items {
		total = total.Add(it.price)
	}
	return total
}

// CheckoutReport lists everything that keeps the order from being confirmed: a missing
// customer, an empty cart, a missing delivery address or a missing payment.
// It returns nil when the order is complete.
func (o *Order) CheckoutReport() error {
	var problems []error
	if o.customerID.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("customer id"))
	}
	if len(o.items) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("at least one item"))
	}
	if o.deliveryAddress == nil {
		problems = append(problems, errs.NewValueIsRequiredError("delivery address"))
	}
	if o.payment == nil {
		problems = append(problems, errs.NewValueIsRequiredError("payment"))
	}
	return errs.Validate("order", problems...)
}

// Confirm moves a complete pending order to Confirmed.
//
// Returns a *errs.DomainRuleError wrapping the CheckoutReport validation error when the
// order is incomplete, or wrapping the transition error when the order is not pending.
// On failure the status is unchanged. The allergen cross-check against the customer is
// the caller's responsibility.
func (o *Order) Confirm(now time.Time) error {
	if err := o.CheckoutReport(); err != nil {
		return errs.NewDomainRuleErrorWithCause("order cannot be confirmed", err)
	}

	next, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = next
	o.updatedAt = now
	return nil
}

// Cancel moves the order to Cancelled from any status but Delivered.
func (o *Order) Cancel(now time.Time) error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = next
	o.updatedAt = now
	return nil
}

// SetStatus assigns a status directly. It is the entry point for the kitchen and
// delivery process and only checks that the value is a known status.
func (o *Order) SetStatus(status Status, now time.Time) error {
	if err := o.setStatus(status); err != nil {
		return err
	}
	o.updatedAt = now
	return nil
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.items = o.Items()
	c.deliveryAddress = o.DeliveryAddress()
	c.payment = o.Payment()
	return &c
}

func (o *Order) indexOf(pizzaID kernel.UUID) int {
	return slices.IndexFunc(o.items, func(it Item) bool {
		return it.PizzaID().IsEqual(pizzaID)
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	o.items = make([]Item, 0, len(items))
	for _, it := range items {
		if it.pizza.Validate() != nil {
			return errs.NewValueIsInvalidError("order item")
		}
		if o.indexOf(it.PizzaID()) >= 0 {
			return errs.NewValueIsInvalidError("duplicate order item")
		}
		o.items = append(o.items, it.clone())
	}
	return nil
}

func (o *Order) setDeliveryAddress(address *DeliveryAddress) error {
	if address == nil {
		o.deliveryAddress = nil
		return nil
	}
	if err := address.Validate(); err != nil {
		return err
	}
	a := *address
	o.deliveryAddress = &a
	return nil
}

func (o *Order) setPayment(payment *Payment) error {
	if payment == nil {
		o.payment = nil
		return nil
	}
	if err := payment.Validate(); err != nil {
		return err
	}
	p := *payment
	o.payment = &p
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
