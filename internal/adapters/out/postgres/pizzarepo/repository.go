package pizzarepo

import (
	"context"
	"errors"
	"strings"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/pizza"
	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPizzaRepository implements ports.PizzaRepository using GORM.
type GormPizzaRepository struct {
	db *gorm.DB
}

func NewGormPizzaRepository(db *gorm.DB) *GormPizzaRepository {
	return &GormPizzaRepository{db: db}
}

// FindByID retrieves a pizza by ID.
func (r *GormPizzaRepository) FindByID(ctx context.Context, id kernel.UUID) (*pizza.Pizza, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PizzaDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pizza", id.String())
		}
		return nil, err
	}

	return pizzaToDomain(dto)
}

// FindAll retrieves every pizza in insertion order.
func (r *GormPizzaRepository) FindAll(ctx context.Context) ([]*pizza.Pizza, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindByName retrieves the pizzas whose name contains name, ignoring case.
func (r *GormPizzaRepository) FindByName(ctx context.Context, name string) ([]*pizza.Pizza, error) {
	return r.find(r.db.WithContext(ctx).Where("name ILIKE ?", "%"+escapeLike(name)+"%"))
}

// Save inserts the pizza or overwrites the stored row with the same ID.
func (r *GormPizzaRepository) Save(ctx context.Context, aggregate *pizza.Pizza) (*pizza.Pizza, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := pizzaFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error; err != nil {
		return nil, err
	}

	return aggregate.Clone(), nil
}

// Update overwrites an existing pizza.
func (r *GormPizzaRepository) Update(ctx context.Context, aggregate *pizza.Pizza) (*pizza.Pizza, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := pizzaFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PizzaDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "seq").
		Updates(&dto)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("pizza", aggregate.ID().String())
	}

	return aggregate.Clone(), nil
}

// Delete removes a pizza and reports whether it existed.
func (r *GormPizzaRepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&PizzaDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormPizzaRepository) find(query *gorm.DB) ([]*pizza.Pizza, error) {
	var dtos []PizzaDTO
	if err := query.Order("seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	pizzas := make([]*pizza.Pizza, 0, len(dtos))
	for _, dto := range dtos {
		p, err := pizzaToDomain(dto)
		if err != nil {
			return nil, err
		}
		pizzas = append(pizzas, p)
	}

	return pizzas, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
