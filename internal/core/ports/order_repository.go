package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations store and return independent copies: a change made to a returned order
// is visible to others only after Update.
type OrderRepository interface {
	// FindByID returns the order or an *errs.ObjectNotFoundError.
	FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindAll returns every order in insertion order.
	FindAll(ctx context.Context) ([]*order.Order, error)

	// FindByCustomerID returns the orders placed by a customer.
	FindByCustomerID(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// FindByStatus returns the orders currently in status.
	FindByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// Save inserts or overwrites the order and returns the stored state.
	// It never fails with a not-found error and is used for first insertion.
	Save(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// Update overwrites an existing order. An unknown id yields *errs.ObjectNotFoundError.
	// The whole aggregate is replaced: concurrent read-modify-write sequences on the same
	// id are last-write-wins.
	Update(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// UpdateInStatus overwrites an existing order only while its stored status is still
	// expected. A status changed by another writer yields *errs.ConflictError and leaves
	// the stored order as it is; an unknown id yields *errs.ObjectNotFoundError.
	UpdateInStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (*order.Order, error)

	// Delete removes the order and reports whether it existed.
	Delete(ctx context.Context, id kernel.UUID) (bool, error)
}
