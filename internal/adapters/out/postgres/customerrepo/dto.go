// Package customerrepo provides data transfer objects and mapping functions for customer
// persistence. Allergy records are stored as a JSON column in the form the masker
// produced; the repository never writes an unmasked list.
package customerrepo

import (
	"strings"
	"time"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO represents the database structure for persisting customers.
// EmailKey is the lower-cased address and carries the uniqueness constraint.
type CustomerDTO struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Seq       int64        `gorm:"autoIncrement;uniqueIndex"`
	Name      string       `gorm:"type:varchar(255);not null"`
	Email     string       `gorm:"type:varchar(320);not null"`
	EmailKey  string       `gorm:"type:varchar(320);not null;uniqueIndex"`
	Phone     string       `gorm:"type:varchar(64);not null"`
	Allergies []AllergyDTO `gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time    `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time    `gorm:"not null;autoUpdateTime:false"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type AllergyDTO struct {
	Name      string `json:"name"`
	Severity  string `json:"severity"`
	Notes     string `json:"notes,omitempty"`
	Protected bool   `json:"protected"`
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func fromDomain(c *customer.Customer) CustomerDTO {
	allergies := make([]AllergyDTO, 0, len(c.Allergies()))
	for _, a := range c.Allergies() {
		allergies = append(allergies, AllergyDTO{
			Name:      a.Name(),
			Severity:  a.Severity().String(),
			Notes:     a.Notes(),
			Protected: a.IsProtected(),
		})
	}

	return CustomerDTO{
		ID:        c.ID().Bytes(),
		Name:      c.Name(),
		Email:     c.Email(),
		EmailKey:  emailKey(c.Email()),
		Phone:     c.Phone(),
		Allergies: allergies,
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	allergies := make([]customer.Allergy, 0, len(dto.Allergies))
	for _, a := range dto.Allergies {
		allergy, allergyErr := customer.NewAllergy(a.Name, customer.Severity(a.Severity), a.Notes)
		if allergyErr != nil {
			return nil, allergyErr
		}
		if a.Protected {
			allergy = allergy.Protect()
		}
		allergies = append(allergies, allergy)
	}

	return customer.RestoreCustomer(id, dto.Name, dto.Email, dto.Phone, allergies, dto.CreatedAt, dto.UpdatedAt)
}
