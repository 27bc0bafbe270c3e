package customerrepo

import (
	"context"
	"errors"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements ports.CustomerRepository using GORM.
// Allergies pass through the masker on every write and back through it on every read.
type GormCustomerRepository struct {
	db     *gorm.DB
	masker ports.AllergyMasker
}

func NewGormCustomerRepository(db *gorm.DB, masker ports.AllergyMasker) *GormCustomerRepository {
	return &GormCustomerRepository{
		db:     db,
		masker: masker,
	}
}

func (r *GormCustomerRepository) FindByID(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id.String())
		}
		return nil, err
	}

	return r.restore(dto)
}

// FindByEmail matches the address ignoring case.
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "email_key = ?", emailKey(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", emailKey(email))
		}
		return nil, err
	}

	return r.restore(dto)
}

func (r *GormCustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	var dtos []CustomerDTO
	if err := r.db.WithContext(ctx).Order("seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	customers := make([]*customer.Customer, 0, len(dtos))
	for _, dto := range dtos {
		c, err := r.restore(dto)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return customers, nil
}

func (r *GormCustomerRepository) Save(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	masked, err := r.mask(c)
	if err != nil {
		return nil, err
	}

	dto := fromDomain(masked)
	if err = r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error; err != nil {
		return nil, err
	}

	return r.unmask(masked)
}

func (r *GormCustomerRepository) Update(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	masked, err := r.mask(c)
	if err != nil {
		return nil, err
	}

	dto := fromDomain(masked)
	result := r.db.WithContext(ctx).Model(&CustomerDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "seq").
		Updates(&dto)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("customer", c.ID().String())
	}

	return r.unmask(masked)
}

func (r *GormCustomerRepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&CustomerDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormCustomerRepository) restore(dto CustomerDTO) (*customer.Customer, error) {
	c, err := toDomain(dto)
	if err != nil {
		return nil, err
	}
	return r.unmask(c)
}

func (r *GormCustomerRepository) mask(c *customer.Customer) (*customer.Customer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	masked, err := r.masker.Mask(c.Allergies())
	if err != nil {
		return nil, err
	}
	return c.WithAllergies(masked), nil
}

func (r *GormCustomerRepository) unmask(c *customer.Customer) (*customer.Customer, error) {
	plain, err := r.masker.Unmask(c.Allergies())
	if err != nil {
		return nil, err
	}
	return c.WithAllergies(plain), nil
}
