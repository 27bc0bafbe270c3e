package usecases

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/pizza"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// OrderService drives an order from an empty cart to confirmation or cancellation.
//
// Cart lines hold a snapshot of the pizza taken when it was added. Later catalog changes
// reach a pending order only through RefreshPendingOrderPrices.
type OrderService struct {
	orders    ports.OrderRepository
	pizzas    ports.PizzaRepository
	customers ports.CustomerRepository
	guard     services.AllergenGuard
	ids       kernel.IDGenerator
	clock     kernel.Clock
	logger    *slog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	pizzas ports.PizzaRepository,
	customers ports.CustomerRepository,
	ids kernel.IDGenerator,
	clock kernel.Clock,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		pizzas:    pizzas,
		customers: customers,
		guard:     services.NewAllergenGuard(),
		ids:       ids,
		clock:     clock,
		logger:    logger.With("component", "order_service"),
	}
}

// CreateOrder opens an empty pending order for an existing customer.
func (s *OrderService) CreateOrder(ctx context.Context, customerID kernel.UUID) (*order.Order, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(s.ids.NewID(), customerID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	saved, err := s.orders.Save(ctx, o)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "order created",
		"order_id", saved.ID().String(),
		"customer_id", customerID.String(),
	)
	return saved, nil
}

// AddPizzaToOrder puts quantity units of a catalog pizza into the cart. A pizza that is
// already in the cart has its quantity increased and its snapshot refreshed.
func (s *OrderService) AddPizzaToOrder(ctx context.Context, orderID, pizzaID kernel.UUID, quantity int) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	p, err := s.pizzas.FindByID(ctx, pizzaID)
	if err != nil {
		return nil, err
	}

	if err = o.AddItem(p, quantity, s.clock.Now()); err != nil {
		return nil, err
	}
	return s.orders.Update(ctx, o)
}

// RemovePizzaFromOrder drops the cart line for pizzaID. A missing line is not an error.
func (s *OrderService) RemovePizzaFromOrder(ctx context.Context, orderID, pizzaID kernel.UUID) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	o.RemoveItem(pizzaID, s.clock.Now())
	return s.orders.Update(ctx, o)
}

// UpdatePizzaQuantity sets the quantity of a cart line. A quantity of 0 or less removes
// the line.
func (s *OrderService) UpdatePizzaQuantity(ctx context.Context, orderID, pizzaID kernel.UUID, quantity int) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	o.UpdateItemQuantity(pizzaID, quantity, s.clock.Now())
	return s.orders.Update(ctx, o)
}

// SetDeliveryAddress validates the address and attaches it to the order.
// Every invalid field is reported in one *errs.ValidationError.
func (s *OrderService) SetDeliveryAddress(ctx context.Context, orderID kernel.UUID, in AddressInput) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	address, err := order.NewDeliveryAddress(in.Street, in.City, in.State, in.ZipCode, in.Country, in.Instructions)
	if err != nil {
		return nil, err
	}

	if err = o.SetDeliveryAddress(address, s.clock.Now()); err != nil {
		return nil, err
	}
	return s.orders.Update(ctx, o)
}

// SetPayment masks the card data, validates it and attaches it to the order.
// The CVV and the full card number never reach the repository.
func (s *OrderService) SetPayment(ctx context.Context, orderID kernel.UUID, in PaymentInput) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	payment, err := order.NewPayment(in.details())
	if err != nil {
		return nil, err
	}

	if err = o.SetPayment(payment, s.clock.Now()); err != nil {
		return nil, err
	}
	return s.orders.Update(ctx, o)
}

// ConfirmOrder runs in two phases. The check phase loads the order and its customer and
// rejects the order with a *errs.ConflictError wrapping services.ErrAllergenConflict when
// an item contains one of the customer's allergens. The commit phase confirms the order
// and writes it back.
//
// The customer may change between the two phases; nothing serializes a confirmation
// against concurrent allergy updates.
func (s *OrderService) ConfirmOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = s.checkAllergens(ctx, o); err != nil {
		return nil, err
	}

	if err = o.Confirm(s.clock.Now()); err != nil {
		return nil, err
	}

	confirmed, err := s.orders.Update(ctx, o)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "order confirmed",
		"order_id", orderID.String(),
		"total", confirmed.CalculateTotal().String(),
	)
	return confirmed, nil
}

// CancelOrder cancels the order from any status but delivered. Cancelling a cancelled
// order succeeds and leaves it cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = o.Cancel(s.clock.Now()); err != nil {
		return nil, err
	}

	cancelled, err := s.orders.Update(ctx, o)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "order cancelled", "order_id", orderID.String())
	return cancelled, nil
}

// SetOrderStatus moves an order to any known status. It serves the kitchen and delivery
// process, which owns the preparing, delivering and delivered steps.
func (s *OrderService) SetOrderStatus(ctx context.Context, orderID kernel.UUID, status order.Status) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := o.Status()
	if err = o.SetStatus(status, s.clock.Now()); err != nil {
		return nil, err
	}

	updated, err := s.orders.Update(ctx, o)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "order status set",
		"order_id", orderID.String(),
		"from", from.String(),
		"to", status.String(),
	)
	return updated, nil
}

func (s *OrderService) GetOrderTotal(ctx context.Context, orderID kernel.UUID) (OrderTotal, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return OrderTotal{}, err
	}
	return OrderTotal{OrderID: o.ID(), Total: o.CalculateTotal()}, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

func (s *OrderService) GetOrdersByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	return s.orders.FindByCustomerID(ctx, customerID)
}

func (s *OrderService) GetOrdersByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return s.orders.FindByStatus(ctx, status)
}

// RefreshPendingOrderPrices re-snapshots the cart lines of every pending order from the
// current catalog. Lines whose pizza has left the catalog keep their snapshot, and orders
// past pending are never touched. Orders are written back only when a line changed, and
// only if they are still pending at write time. An order that moved on while the job ran
// keeps what its owner saved.
func (s *OrderService) RefreshPendingOrderPrices(ctx context.Context) (RefreshResult, error) {
	pending, err := s.orders.FindByStatus(ctx, order.Pending)
	if err != nil {
		return RefreshResult{}, err
	}

	result := RefreshResult{OrdersScanned: len(pending)}
	catalog := make(map[kernel.UUID]*pizza.Pizza)

	for _, o := range pending {
		repriced := 0
		for _, item := range o.Items() {
			current, found, err := s.catalogPizza(ctx, catalog, item.PizzaID())
			if err != nil {
				return result, err
			}
			if !found || !isStale(item, current) {
				continue
			}
			if o.RepriceItem(current, s.clock.Now()) {
				repriced++
			}
		}

		if repriced == 0 {
			continue
		}
		if _, err = s.orders.UpdateInStatus(ctx, o, order.Pending); err != nil {
			if errors.Is(err, errs.ErrConflict) || errors.Is(err, errs.ErrObjectNotFound) {
				s.logger.InfoContext(ctx, "order changed before repricing, skipped",
					"order_id", o.ID().String(),
				)
				result.OrdersSkipped++
				continue
			}
			return result, err
		}
		result.OrdersUpdated++
		result.ItemsRepriced += repriced
	}

	if result.OrdersUpdated > 0 {
		s.logger.InfoContext(ctx, "pending orders repriced",
			"orders", result.OrdersUpdated,
			"items", result.ItemsRepriced,
		)
	}
	return result, nil
}

func (s *OrderService) checkAllergens(ctx context.Context, o *order.Order) error {
	if o.CustomerID().IsZero() {
		return nil
	}

	c, err := s.customers.FindByID(ctx, o.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		s.logger.WarnContext(ctx, "customer not found, allergen check skipped",
			"order_id", o.ID().String(),
			"customer_id", o.CustomerID().String(),
		)
		return nil
	}
	if err != nil {
		return err
	}

	if err = s.guard.Check(o, c); err != nil {
		s.logger.WarnContext(ctx, "order confirmation blocked",
			"order_id", o.ID().String(),
			"error", err,
		)
		return err
	}
	return nil
}

func (s *OrderService) catalogPizza(
	ctx context.Context,
	cache map[kernel.UUID]*pizza.Pizza,
	id kernel.UUID,
) (*pizza.Pizza, bool, error) {
	if p, ok := cache[id]; ok {
		return p, p != nil, nil
	}

	p, err := s.pizzas.FindByID(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		cache[id] = nil
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	cache[id] = p
	return p, true, nil
}

// isStale reports whether the catalog pizza differs from the line's snapshot in anything
// the customer sees: name, size, price or allergens.
func isStale(item order.Item, current *pizza.Pizza) bool {
	snapshot := item.Pizza()
	return snapshot.Name() != current.Name() ||
		snapshot.Size() != current.Size() ||
		!snapshot.CalculatePrice().IsEqual(current.CalculatePrice()) ||
		!slices.Equal(snapshot.Allergens(), current.Allergens())
}
