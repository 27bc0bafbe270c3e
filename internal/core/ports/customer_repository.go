package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customers.
//
// Implementations pass the allergy list through an AllergyMasker: Mask on every Save and
// Update, Unmask on every read.
type CustomerRepository interface {
	FindByID(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// FindByEmail matches the address ignoring case and returns *errs.ObjectNotFoundError
	// when no customer uses it.
	FindByEmail(ctx context.Context, email string) (*customer.Customer, error)

	FindAll(ctx context.Context) ([]*customer.Customer, error)
	Save(ctx context.Context, c *customer.Customer) (*customer.Customer, error)
	Update(ctx context.Context, c *customer.Customer) (*customer.Customer, error)
	Delete(ctx context.Context, id kernel.UUID) (bool, error)
}

// AllergyMasker is the protective transform applied to allergy records at the storage
// boundary. The default implementation only sets a marker; a cryptographic one can be
// swapped in without touching callers.
type AllergyMasker interface {
	Mask(allergies []customer.Allergy) ([]customer.Allergy, error)
	Unmask(allergies []customer.Allergy) ([]customer.Allergy, error)
}
