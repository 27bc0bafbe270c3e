package pizzarepo

import (
	"context"
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/pizza"
	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormToppingRepository implements ports.ToppingRepository using GORM.
type GormToppingRepository struct {
	db *gorm.DB
}

func NewGormToppingRepository(db *gorm.DB) *GormToppingRepository {
	return &GormToppingRepository{db: db}
}

func (r *GormToppingRepository) FindByID(ctx context.Context, id kernel.UUID) (*pizza.Topping, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ToppingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("topping", id.String())
		}
		return nil, err
	}

	return toppingToDomain(dto)
}

func (r *GormToppingRepository) FindAll(ctx context.Context) ([]*pizza.Topping, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindAvailable retrieves the toppings that may currently be ordered.
func (r *GormToppingRepository) FindAvailable(ctx context.Context) ([]*pizza.Topping, error) {
	return r.find(r.db.WithContext(ctx).Where("available = ?", true))
}

func (r *GormToppingRepository) Save(ctx context.Context, topping *pizza.Topping) (*pizza.Topping, error) {
	if err := topping.Validate(); err != nil {
		return nil, err
	}

	dto := toppingFromDomain(topping)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error; err != nil {
		return nil, err
	}

	return topping.Clone(), nil
}

func (r *GormToppingRepository) Update(ctx context.Context, topping *pizza.Topping) (*pizza.Topping, error) {
	if err := topping.Validate(); err != nil {
		return nil, err
	}

	dto := toppingFromDomain(topping)
	result := r.db.WithContext(ctx).Model(&ToppingDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "seq").
		Updates(&dto)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("topping", topping.ID().String())
	}

	return topping.Clone(), nil
}

func (r *GormToppingRepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&ToppingDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormToppingRepository) find(query *gorm.DB) ([]*pizza.Topping, error) {
	var dtos []ToppingDTO
	if err := query.Order("seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	toppings := make([]*pizza.Topping, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toppingToDomain(dto)
		if err != nil {
			return nil, err
		}
		toppings = append(toppings, t)
	}

	return toppings, nil
}
