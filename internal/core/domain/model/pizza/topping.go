package pizza

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

var ErrToppingIsNotConstructed = errors.New("Topping must be created via NewTopping constructor")

// Topping is a catalog entry that can be put on a pizza. Apart from the availability
// flag it does not change after construction.
type Topping struct {
	id        kernel.UUID
	name      string
	price     kernel.Money
	allergens []string
	available bool

	isConstructed bool
}

// NewTopping validates every field and reports all violations at once.
// Allergens are stored as a sorted set of canonical names.
func NewTopping(id kernel.UUID, name string, price kernel.Money, allergens []string, available bool) (*Topping, error) {
	t := &Topping{
		allergens:     kernel.UnionAllergens(allergens),
		available:     available,
		isConstructed: true,
	}

	if err := errs.Validate("topping",
		t.setID(id),
		t.setName(name),
		t.setPrice(price),
	); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Topping) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrToppingIsNotConstructed
	}
	return nil
}

func (t *Topping) IsEqual(other *Topping) bool {
	return other != nil && t.id.IsEqual(other.id)
}

func (t *Topping) ID() kernel.UUID {
	return t.id
}

func (t *Topping) Name() string {
	return t.name
}

func (t *Topping) Price() kernel.Money {
	return t.price
}

// Allergens returns a copy of the topping's allergen set.
func (t *Topping) Allergens() []string {
	return slices.Clone(t.allergens)
}

func (t *Topping) IsAvailable() bool {
	return t.available
}

// SetAvailability toggles whether the topping may be put on new or existing pizzas.
func (t *Topping) SetAvailability(available bool) {
	t.available = available
}

func (t *Topping) HasAllergen(allergen string) bool {
	return kernel.ContainsAllergen(t.allergens, allergen)
}

// Clone returns an independent copy.
func (t *Topping) Clone() *Topping {
	if t == nil {
		return nil
	}
	c := *t
	c.allergens = slices.Clone(t.allergens)
	return &c
}

func (t *Topping) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Topping) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("topping name")
	}
	t.name = name
	return nil
}

func (t *Topping) setPrice(price kernel.Money) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("topping price", fmt.Errorf("%s is less than 0", price))
	}
	t.price = price
	return nil
}
