package usecases

import (
	"context"
	"errors"
	"log/slog"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// ErrEmailTaken is the cause of the ConflictError returned when an email address already
// belongs to another customer.
var ErrEmailTaken = errors.New("email is already registered")

// CustomerService registers customers and maintains their profile and allergy records.
// Allergy records are masked by the customer repository; this service never sees the
// stored form.
type CustomerService struct {
	customers ports.CustomerRepository
	ids       kernel.IDGenerator
	clock     kernel.Clock
	logger    *slog.Logger
}

func NewCustomerService(
	customers ports.CustomerRepository,
	ids kernel.IDGenerator,
	clock kernel.Clock,
	logger *slog.Logger,
) *CustomerService {
	return &CustomerService{
		customers: customers,
		ids:       ids,
		clock:     clock,
		logger:    logger.With("component", "customer_service"),
	}
}

// CreateCustomer registers a new customer with no allergies.
//
// Returns a *errs.ConflictError wrapping ErrEmailTaken when the address is in use
// (compared ignoring case) and a *errs.ValidationError when the input is invalid.
func (s *CustomerService) CreateCustomer(ctx context.Context, in CustomerInput) (*customer.Customer, error) {
	if err := s.ensureEmailFree(ctx, in.Email, kernel.UUID{}); err != nil {
		return nil, err
	}

	c, err := customer.NewCustomer(s.ids.NewID(), in.Name, in.Email, in.Phone, s.clock.Now())
	if err != nil {
		return nil, err
	}

	saved, err := s.customers.Save(ctx, c)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "customer registered", "customer_id", saved.ID().String())
	return saved, nil
}

// UpdateCustomer applies the non-empty fields of upd. A changed email must not belong to
// any other customer. On any error the stored customer is unchanged.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id kernel.UUID, upd CustomerUpdate) (*customer.Customer, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Email != "" {
		if err = s.ensureEmailFree(ctx, upd.Email, id); err != nil {
			return nil, err
		}
	}

	if err = c.UpdateProfile(upd.Name, upd.Email, upd.Phone, s.clock.Now()); err != nil {
		return nil, err
	}
	return s.customers.Update(ctx, c)
}

// AddAllergy records an allergy. An allergy with the same name (ignoring case) is kept
// as it is and the call succeeds.
func (s *CustomerService) AddAllergy(ctx context.Context, customerID kernel.UUID, in AllergyInput) (*customer.Customer, error) {
	c, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	allergy, err := customer.NewAllergy(in.Name, in.Severity, in.Notes)
	if err != nil {
		return nil, err
	}

	if err = c.AddAllergy(allergy, s.clock.Now()); err != nil {
		return nil, err
	}

	updated, err := s.customers.Update(ctx, c)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "allergy recorded",
		"customer_id", customerID.String(),
		"severity", allergy.Severity().String(),
	)
	return updated, nil
}

// RemoveAllergy deletes the allergy with the given name. Removing an allergy the customer
// does not have is not an error.
func (s *CustomerService) RemoveAllergy(ctx context.Context, customerID kernel.UUID, name string) (*customer.Customer, error) {
	c, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	c.RemoveAllergy(name, s.clock.Now())
	return s.customers.Update(ctx, c)
}

func (s *CustomerService) GetCustomerByID(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

func (s *CustomerService) GetCustomerAllergies(ctx context.Context, id kernel.UUID) ([]customer.Allergy, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Allergies(), nil
}

// ensureEmailFree fails when email belongs to a customer other than self.
// A zero self means no customer may hold it.
func (s *CustomerService) ensureEmailFree(ctx context.Context, email string, self kernel.UUID) error {
	existing, err := s.customers.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID().IsEqual(self):
		return nil
	}

	s.logger.WarnContext(ctx, "email already registered", "customer_id", existing.ID().String())
	return errs.NewConflictErrorWithCause("customer email", "is already registered", ErrEmailTaken)
}
