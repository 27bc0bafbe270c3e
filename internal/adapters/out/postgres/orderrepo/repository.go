package orderrepo

import (
	"context"
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID retrieves an order by ID.
func (r *GormOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindAll retrieves every order in insertion order.
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindByCustomerID retrieves the orders placed by a customer.
func (r *GormOrderRepository) FindByCustomerID(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("customer_id = ?", customerID.Bytes()))
}

// FindByStatus retrieves the orders currently in status.
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ?", int(status)))
}

// Save inserts the order or overwrites the stored row with the same ID.
func (r *GormOrderRepository) Save(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error; err != nil {
		return nil, err
	}

	return aggregate.Clone(), nil
}

// Update saves an existing order to the database. The whole row is replaced.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "seq").
		Updates(&dto)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	return aggregate.Clone(), nil
}

// UpdateInStatus replaces the row only while its status column still holds expected.
// When no row matches, a second lookup tells a missing order from a moved one.
func (r *GormOrderRepository) UpdateInStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Select("*").Omit("id", "seq").
		Updates(&dto)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return nil, errs.NewConflictError("order "+aggregate.ID().String(), "is no longer "+expected.String())
	}

	return aggregate.Clone(), nil
}

// Delete removes an order and reports whether it existed.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormOrderRepository) find(query *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := query.Order("seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
