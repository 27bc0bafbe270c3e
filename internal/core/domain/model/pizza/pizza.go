package pizza

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

var ErrPizzaIsNotConstructed = errors.New("Pizza must be created via NewPizza constructor")

// DefaultBaseAllergens are the allergens of the dough and cheese every pizza is made of.
// Custom pizzas always declare them, independent of the chosen toppings.
func DefaultBaseAllergens() []string {
	return []string{"dairy", "gluten"}
}

// Pizza is the catalog aggregate root. It owns its toppings and keeps a derived allergen
// set that is rebuilt from scratch whenever the toppings change.
//
// Invariants:
//   - name is not blank
//   - basePrice is greater than 0
//   - size is small, medium or large
//   - toppings are unique by id
//   - allergens == baseAllergens ∪ every topping's allergens
type Pizza struct {
	id            kernel.UUID
	name          string
	basePrice     kernel.Money
	size          Size
	toppings      []*Topping
	baseAllergens []string
	allergens     []string
	createdAt     time.Time

	isConstructed bool
}

// NewPizza builds a pizza from its declared state. Duplicate toppings (by id) are
// collapsed to the first occurrence, and the derived allergen set is computed from
// baseAllergens and the toppings.
//
// Example:
//
//	p, err := pizza.NewPizza(ids.NewID(), "Margherita", kernel.MoneyFromFloat(8.99),
//	    pizza.Medium, pizza.DefaultBaseAllergens(), nil, clock.Now())
//	if err != nil {
//	    var ve *errs.ValidationError
//	    if errors.As(err, &ve) {
//	        // every violated rule is listed in ve.Problems()
//	    }
//	}
func NewPizza(
	id kernel.UUID,
	name string,
	basePrice kernel.Money,
	size Size,
	baseAllergens []string,
	toppings []*Topping,
	createdAt time.Time,
) (*Pizza, error) {
	p := &Pizza{
		baseAllergens: kernel.UnionAllergens(baseAllergens),
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errs.Validate("pizza",
		p.setID(id),
		p.setName(name),
		p.setBasePrice(basePrice),
		p.setSize(size),
		p.setToppings(toppings),
	); err != nil {
		return nil, err
	}

	p.RecomputeAllergens()
	return p, nil
}

func (p *Pizza) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPizzaIsNotConstructed
	}
	return nil
}

func (p *Pizza) IsEqual(other *Pizza) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Pizza) ID() kernel.UUID {
	return p.id
}

func (p *Pizza) Name() string {
	return p.name
}

func (p *Pizza) BasePrice() kernel.Money {
	return p.basePrice
}

func (p *Pizza) Size() Size {
	return p.size
}

// Toppings returns copies of the current toppings in insertion order.
func (p *Pizza) Toppings() []*Topping {
	out := make([]*Topping, 0, len(p.toppings))
	for _, t := range p.toppings {
		out = append(out, t.Clone())
	}
	return out
}

// BaseAllergens returns the declared allergens that do not come from toppings.
func (p *Pizza) BaseAllergens() []string {
	return slices.Clone(p.baseAllergens)
}

// Allergens returns the derived allergen set.
func (p *Pizza) Allergens() []string {
	return slices.Clone(p.allergens)
}

func (p *Pizza) CreatedAt() time.Time {
	return p.createdAt
}

// CalculatePrice returns (basePrice + Σ topping price) × size multiplier.
// It is pure: the same pizza state always yields the same amount.
func (p *Pizza) CalculatePrice() kernel.Money {
	total := p.basePrice
	for _, t := range p.toppings {
		total = total.Add(t.Price())
	}
	return total.Mul(p.size.Multiplier())
}

// HasAllergen reports whether allergen is in the pizza's own set or on any current topping.
func (p *Pizza) HasAllergen(allergen string) bool {
	if kernel.ContainsAllergen(p.allergens, allergen) {
		return true
	}
	for _, t := range p.toppings {
		if t.HasAllergen(allergen) {
			return true
		}
	}
	return false
}

// HasTopping reports whether a topping with the given id is on the pizza.
func (p *Pizza) HasTopping(toppingID kernel.UUID) bool {
	return slices.ContainsFunc(p.toppings, func(t *Topping) bool {
		return t.ID().IsEqual(toppingID)
	})
}

// AddTopping appends a copy of topping unless one with the same id is already present,
// then rebuilds the allergen set. Availability is checked by the caller.
func (p *Pizza) AddTopping(topping *Topping) error {
	if err := topping.Validate(); err != nil {
		return err
	}
	if p.HasTopping(topping.ID()) {
		return nil
	}

	p.toppings = append(p.toppings, topping.Clone())
	p.RecomputeAllergens()
	return nil
}

// RemoveTopping drops the topping with the given id, if any, and rebuilds the allergen set.
func (p *Pizza) RemoveTopping(toppingID kernel.UUID) {
	p.toppings = slices.DeleteFunc(p.toppings, func(t *Topping) bool {
		return t.ID().IsEqual(toppingID)
	})
	p.RecomputeAllergens()
}

// RecomputeAllergens rebuilds the derived set from the base allergens and the current
// toppings. Allergens of removed toppings never survive a recompute.
func (p *Pizza) RecomputeAllergens() {
	lists := make([][]string, 0, len(p.toppings)+1)
	lists = append(lists, p.baseAllergens)
	for _, t := range p.toppings {
		lists = append(lists, t.allergens)
	}
	p.allergens = kernel.UnionAllergens(lists...)
}

// Clone returns a deep copy, used for order item snapshots and repository storage.
func (p *Pizza) Clone() *Pizza {
	if p == nil {
		return nil
	}
	c := *p
	c.toppings = p.Toppings()
	c.baseAllergens = slices.Clone(p.baseAllergens)
	c.allergens = slices.Clone(p.allergens)
	return &c
}

func (p *Pizza) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Pizza) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("pizza name")
	}
	p.name = name
	return nil
}

func (p *Pizza) setBasePrice(price kernel.Money) error {
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("base price", fmt.Errorf("%s is not greater than 0", price))
	}
	p.basePrice = price
	return nil
}

func (p *Pizza) setSize(size Size) error {
	if err := size.Validate(); err != nil {
		return err
	}
	p.size = size
	return nil
}

func (p *Pizza) setToppings(toppings []*Topping) error {
	p.toppings = make([]*Topping, 0, len(toppings))
	for _, t := range toppings {
		if err := t.Validate(); err != nil {
			return err
		}
		if p.HasTopping(t.ID()) {
			continue
		}
		p.toppings = append(p.toppings, t.Clone())
	}
	return nil
}
