package customer

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Customer is a person placing orders. Email is unique across customers; uniqueness is
// checked by the customer service, not by the entity.
//
// Allergies are kept in insertion order and are unique by name. Every mutation bumps
// updatedAt to the instant passed by the caller.
type Customer struct {
	id        kernel.UUID
	name      string
	email     string
	phone     string
	allergies []Allergy
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewCustomer creates a customer without allergies, stamped with now.
func NewCustomer(id kernel.UUID, name, email, phone string, now time.Time) (*Customer, error) {
	return RestoreCustomer(id, name, email, phone, nil, now, now)
}

// RestoreCustomer rebuilds a customer from persisted state.
func RestoreCustomer(
	id kernel.UUID,
	name, email, phone string,
	allergies []Allergy,
	createdAt, updatedAt time.Time,
) (*Customer, error) {
	c := &Customer{
		allergies:     make([]Allergy, 0, len(allergies)),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errs.Validate("customer",
		c.setID(id),
		c.setName(name),
		c.setEmail(email),
		c.setPhone(phone),
		c.setAllergies(allergies),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

func (c *Customer) IsEqual(other *Customer) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Customer) ID() kernel.UUID {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) Email() string {
	return c.email
}

func (c *Customer) Phone() string {
	return c.phone
}

// Allergies returns a copy of the allergy list.
func (c *Customer) Allergies() []Allergy {
	return slices.Clone(c.allergies)
}

func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Customer) UpdatedAt() time.Time {
	return c.updatedAt
}

// HasAllergy reports whether an allergy with the given name is recorded.
func (c *Customer) HasAllergy(name string) bool {
	return c.indexOfAllergy(name) >= 0
}

// AddAllergy appends allergy unless one with the same name is already recorded,
// in which case the customer is left untouched.
func (c *Customer) AddAllergy(allergy Allergy, now time.Time) error {
	if err := allergy.Validate(); err != nil {
		return err
	}
	if c.HasAllergy(allergy.Name()) {
		return nil
	}

	c.allergies = append(c.allergies, allergy)
	c.updatedAt = now
	return nil
}

// RemoveAllergy drops the allergy with the given name. Removing an unknown name is not an error.
func (c *Customer) RemoveAllergy(name string, now time.Time) {
	if i := c.indexOfAllergy(name); i >= 0 {
		c.allergies = slices.Delete(c.allergies, i, i+1)
	}
	c.updatedAt = now
}

// UpdateProfile replaces the non-empty fields among name, email and phone. All
// supplied values are validated first; on failure the customer is unchanged.
func (c *Customer) UpdateProfile(name, email, phone string, now time.Time) error {
	next := *c
	if err := errs.Validate("customer",
		next.setNameIfPresent(name),
		next.setEmailIfPresent(email),
		next.setPhoneIfPresent(phone),
	); err != nil {
		return err
	}

	c.name, c.email, c.phone = next.name, next.email, next.phone
	c.updatedAt = now
	return nil
}

// WithAllergies returns a copy holding the given allergy list. Storage adapters use it
// to apply the masking transform without touching the caller's instance.
func (c *Customer) WithAllergies(allergies []Allergy) *Customer {
	cp := c.Clone()
	cp.allergies = slices.Clone(allergies)
	return cp
}

// Clone returns an independent copy.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	cp := *c
	cp.allergies = slices.Clone(c.allergies)
	return &cp
}

func (c *Customer) indexOfAllergy(name string) int {
	needle := kernel.NormalizeAllergen(name)
	return slices.IndexFunc(c.allergies, func(a Allergy) bool {
		return kernel.NormalizeAllergen(a.Name()) == needle
	})
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	c.name = name
	return nil
}

func (c *Customer) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a valid email address", email))
	}
	c.email = email
	return nil
}

func (c *Customer) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

func (c *Customer) setAllergies(allergies []Allergy) error {
	for _, a := range allergies {
		if err := a.Validate(); err != nil {
			return err
		}
		if c.HasAllergy(a.Name()) {
			continue
		}
		c.allergies = append(c.allergies, a)
	}
	return nil
}

func (c *Customer) setNameIfPresent(name string) error {
	if name == "" {
		return nil
	}
	return c.setName(name)
}

func (c *Customer) setEmailIfPresent(email string) error {
	if email == "" {
		return nil
	}
	return c.setEmail(email)
}

func (c *Customer) setPhoneIfPresent(phone string) error {
	if phone == "" {
		return nil
	}
	return c.setPhone(phone)
}
