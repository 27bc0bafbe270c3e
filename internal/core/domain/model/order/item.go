package order

import (
	"fmt"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/pizza"
	"pizzeria/internal/pkg/errs"
)

// Item is one line of the shopping cart. It holds a snapshot of the pizza taken when the
// line was last added or re-priced, and price == snapshot.CalculatePrice() × quantity as
// of that moment. Later catalog changes do not reach the snapshot.
type Item struct {
	pizza    *pizza.Pizza
	quantity int
	price    kernel.Money
}

func newItem(p *pizza.Pizza, quantity int) Item {
	return Item{
		pizza:    p.Clone(),
		quantity: quantity,
		price:    p.CalculatePrice().Times(quantity),
	}
}

// RestoreItem rebuilds an item from persisted state. The stored price is kept as is,
// since it is a snapshot and may differ from what the snapshot would price at today.
func RestoreItem(snapshot *pizza.Pizza, quantity int, price kernel.Money) (Item, error) {
	if err := errs.Validate("order item",
		snapshot.Validate(),
		validateQuantity(quantity),
	); err != nil {
		return Item{}, err
	}
	return Item{
		pizza:    snapshot.Clone(),
		quantity: quantity,
		price:    price,
	}, nil
}

func (i Item) PizzaID() kernel.UUID {
	return i.pizza.ID()
}

// Pizza returns a copy of the snapshot.
func (i Item) Pizza() *pizza.Pizza {
	return i.pizza.Clone()
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) Price() kernel.Money {
	return i.price
}

func (i Item) clone() Item {
	i.pizza = i.pizza.Clone()
	return i
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	return nil
}
