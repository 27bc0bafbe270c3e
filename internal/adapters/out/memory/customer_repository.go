package memory

import (
	"context"
	"strings"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
)

// CustomerRepository stores customers with their allergies passed through the masker.
type CustomerRepository struct {
	store  *store[*customer.Customer]
	masker ports.AllergyMasker
}

func NewCustomerRepository(masker ports.AllergyMasker) *CustomerRepository {
	return &CustomerRepository{
		store:  newStore("customer", (*customer.Customer).ID, (*customer.Customer).Clone),
		masker: masker,
	}
}

func (r *CustomerRepository) FindByID(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	c, err := r.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.unmask(c)
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	needle := strings.TrimSpace(email)
	c, err := r.store.first(ctx, func(c *customer.Customer) bool {
		return strings.EqualFold(c.Email(), needle)
	}, needle)
	if err != nil {
		return nil, err
	}
	return r.unmask(c)
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	all, err := r.store.find(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]*customer.Customer, 0, len(all))
	for _, c := range all {
		plain, err := r.unmask(c)
		if err != nil {
			return nil, err
		}
		out = append(out, plain)
	}
	return out, nil
}

func (r *CustomerRepository) Save(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	masked, err := r.mask(c)
	if err != nil {
		return nil, err
	}
	stored, err := r.store.upsert(ctx, masked)
	if err != nil {
		return nil, err
	}
	return r.unmask(stored)
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	masked, err := r.mask(c)
	if err != nil {
		return nil, err
	}
	stored, err := r.store.replace(ctx, masked)
	if err != nil {
		return nil, err
	}
	return r.unmask(stored)
}

func (r *CustomerRepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	return r.store.remove(ctx, id)
}

func (r *CustomerRepository) mask(c *customer.Customer) (*customer.Customer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	masked, err := r.masker.Mask(c.Allergies())
	if err != nil {
		return nil, err
	}
	return c.WithAllergies(masked), nil
}

func (r *CustomerRepository) unmask(c *customer.Customer) (*customer.Customer, error) {
	plain, err := r.masker.Unmask(c.Allergies())
	if err != nil {
		return nil, err
	}
	return c.WithAllergies(plain), nil
}
