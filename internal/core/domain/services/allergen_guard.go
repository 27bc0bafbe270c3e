package services

import (
	"errors"
	"fmt"
	"strings"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/pizza"
	"pizzeria/internal/pkg/errs"
)

// ErrAllergenConflict is the cause of the ConflictError returned when an order holds a pizza
// containing one of the customer's allergens.
var ErrAllergenConflict = errors.New("order contains items with customer allergens")

// AllergenConflict is one (pizza, allergy) pair that makes an order unsafe for its customer.
type AllergenConflict struct {
	PizzaID   kernel.UUID
	PizzaName string
	Allergen  string
	Severity  customer.Severity
}

// AllergenGuard is a stateless domain service that cross-checks pizzas against allergen
// lists. It reads both aggregates and mutates neither.
//
// Business rules:
//   - A pizza conflicts with an allergen if the allergen is in the pizza's own set or on
//     any of its current toppings
//   - An order conflicts with a customer if any item's pizza snapshot conflicts with
//     any recorded allergy, compared by allergy name
//
// Example usage:
//
//	guard := services.NewAllergenGuard()
//	if err := guard.Check(o, c); errors.Is(err, services.ErrAllergenConflict) {
//	    // keep the order pending
//	}
type AllergenGuard struct{}

func NewAllergenGuard() AllergenGuard {
	return AllergenGuard{}
}

// PizzaConflicts returns the subset of allergens present on p, in input order.
// The result is never nil.
func (AllergenGuard) PizzaConflicts(p *pizza.Pizza, allergens []string) []string {
	conflicts := make([]string, 0)
	for _, a := range allergens {
		if p.HasAllergen(a) {
			conflicts = append(conflicts, a)
		}
	}
	return conflicts
}

// OrderConflicts lists every (item, allergy) pair where the item's pizza snapshot
// contains the allergy.
func (AllergenGuard) OrderConflicts(o *order.Order, c *customer.Customer) ([]AllergenConflict, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var conflicts []AllergenConflict
	allergies := c.Allergies()
	for _, item := range o.Items() {
		snapshot := item.Pizza()
		for _, allergy := range allergies {
			if snapshot.HasAllergen(allergy.Name()) {
				conflicts = append(conflicts, AllergenConflict{
					PizzaID:   snapshot.ID(),
					PizzaName: snapshot.Name(),
					Allergen:  allergy.Name(),
					Severity:  allergy.Severity(),
				})
			}
		}
	}
	return conflicts, nil
}

// Check returns a *errs.ConflictError wrapping ErrAllergenConflict when OrderConflicts
// finds anything, and nil when the order is safe for the customer.
func (g AllergenGuard) Check(o *order.Order, c *customer.Customer) error {
	conflicts, err := g.OrderConflicts(o, c)
	if err != nil {
		return err
	}
	if len(conflicts) == 0 {
		return nil
	}

	pairs := make([]string, 0, len(conflicts))
	for _, cf := range conflicts {
		pairs = append(pairs, fmt.Sprintf("%s contains %s", cf.PizzaName, cf.Allergen))
	}
	return errs.NewConflictErrorWithCause(
		"order "+o.ID().String(),
		"conflicts with customer allergies: "+strings.Join(pairs, "; "),
		ErrAllergenConflict,
	)
}
