package memory

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
)

type OrderRepository struct {
	store *store[*order.Order]
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		store: newStore("order", (*order.Order).ID, (*order.Order).Clone),
	}
}

func (r *OrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.store.get(ctx, id)
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	return r.store.find(ctx, nil)
}

func (r *OrderRepository) FindByCustomerID(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	return r.store.find(ctx, func(o *order.Order) bool {
		return o.CustomerID().IsEqual(customerID)
	})
}

func (r *OrderRepository) FindByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return r.store.find(ctx, func(o *order.Order) bool {
		return o.Status() == status
	})
}

func (r *OrderRepository) Save(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}
	return r.store.upsert(ctx, aggregate)
}

func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}
	return r.store.replace(ctx, aggregate)
}

func (r *OrderRepository) UpdateInStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}
	return r.store.replaceIf(ctx, aggregate, func(stored *order.Order) error {
		if stored.Status() != expected {
			return statusChanged(stored.ID(), expected)
		}
		return nil
	})
}

func (r *OrderRepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	return r.store.remove(ctx, id)
}

func statusChanged(id kernel.UUID, expected order.Status) error {
	return errs.NewConflictError("order "+id.String(), "is no longer "+expected.String())
}
