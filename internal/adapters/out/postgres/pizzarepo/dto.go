// Package pizzarepo provides data transfer objects and mapping functions for catalog
// persistence. Pizzas and toppings live in their own tables; a pizza stores copies of its
// toppings as JSON, the same shape an order line uses for its pizza snapshot.
package pizzarepo

import (
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/pizza"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ToppingDTO represents the database structure for persisting toppings.
type ToppingDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Seq       int64           `gorm:"autoIncrement;uniqueIndex"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Allergens pq.StringArray  `gorm:"type:text[]"`
	Available bool            `gorm:"not null;index"`
}

func (ToppingDTO) TableName() string {
	return "toppings"
}

// PizzaDTO represents the database structure for persisting pizza aggregates.
type PizzaDTO struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Seq           int64             `gorm:"autoIncrement;uniqueIndex"`
	Name          string            `gorm:"type:varchar(255);not null;index"`
	BasePrice     decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	Size          string            `gorm:"type:varchar(16);not null"`
	BaseAllergens pq.StringArray    `gorm:"type:text[]"`
	Toppings      []ToppingSnapshot `gorm:"type:jsonb;serializer:json"`
	CreatedAt     time.Time         `gorm:"not null;autoCreateTime:false"`
}

func (PizzaDTO) TableName() string {
	return "pizzas"
}

// ToppingSnapshot is the JSON form of a topping embedded in a pizza.
type ToppingSnapshot struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Allergens []string        `json:"allergens"`
	Available bool            `json:"available"`
}

// Snapshot is the JSON form of a whole pizza. Order lines store it to keep the pizza as
// it was when it was put into the cart.
type Snapshot struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	BasePrice     decimal.Decimal   `json:"basePrice"`
	Size          string            `json:"size"`
	BaseAllergens []string          `json:"baseAllergens"`
	Toppings      []ToppingSnapshot `json:"toppings"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// SnapshotFromDomain captures the persisted state of p.
func SnapshotFromDomain(p *pizza.Pizza) Snapshot {
	return Snapshot{
		ID:            p.ID().Bytes(),
		Name:          p.Name(),
		BasePrice:     p.BasePrice().Amount(),
		Size:          p.Size().String(),
		BaseAllergens: p.BaseAllergens(),
		Toppings:      toppingSnapshots(p.Toppings()),
		CreatedAt:     p.CreatedAt(),
	}
}

// ToDomain rebuilds the pizza. The derived allergen set is recomputed, not read.
func (s Snapshot) ToDomain() (*pizza.Pizza, error) {
	id, err := kernel.UUIDFromBytes(s.ID[:])
	if err != nil {
		return nil, err
	}

	size, err := pizza.ParseSize(s.Size)
	if err != nil {
		return nil, err
	}

	toppings := make([]*pizza.Topping, 0, len(s.Toppings))
	for _, ts := range s.Toppings {
		t, toppingErr := ts.toDomain()
		if toppingErr != nil {
			return nil, toppingErr
		}
		toppings = append(toppings, t)
	}

	return pizza.NewPizza(id, s.Name, kernel.NewMoney(s.BasePrice), size, s.BaseAllergens, toppings, s.CreatedAt)
}

func (ts ToppingSnapshot) toDomain() (*pizza.Topping, error) {
	id, err := kernel.UUIDFromBytes(ts.ID[:])
	if err != nil {
		return nil, err
	}
	return pizza.NewTopping(id, ts.Name, kernel.NewMoney(ts.Price), ts.Allergens, ts.Available)
}

func toppingSnapshots(toppings []*pizza.Topping) []ToppingSnapshot {
	out := make([]ToppingSnapshot, 0, len(toppings))
	for _, t := range toppings {
		out = append(out, ToppingSnapshot{
			ID:        t.ID().Bytes(),
			Name:      t.Name(),
			Price:     t.Price().Amount(),
			Allergens: t.Allergens(),
			Available: t.IsAvailable(),
		})
	}
	return out
}

func pizzaFromDomain(p *pizza.Pizza) PizzaDTO {
	s := SnapshotFromDomain(p)
	return PizzaDTO{
		ID:            s.ID,
		Name:          s.Name,
		BasePrice:     s.BasePrice,
		Size:          s.Size,
		BaseAllergens: s.BaseAllergens,
		Toppings:      s.Toppings,
		CreatedAt:     s.CreatedAt,
	}
}

func pizzaToDomain(dto PizzaDTO) (*pizza.Pizza, error) {
	return Snapshot{
		ID:            dto.ID,
		Name:          dto.Name,
		BasePrice:     dto.BasePrice,
		Size:          dto.Size,
		BaseAllergens: dto.BaseAllergens,
		Toppings:      dto.Toppings,
		CreatedAt:     dto.CreatedAt,
	}.ToDomain()
}

func toppingFromDomain(t *pizza.Topping) ToppingDTO {
	return ToppingDTO{
		ID:        t.ID().Bytes(),
		Name:      t.Name(),
		Price:     t.Price().Amount(),
		Allergens: t.Allergens(),
		Available: t.IsAvailable(),
	}
}

func toppingToDomain(dto ToppingDTO) (*pizza.Topping, error) {
	return ToppingSnapshot{
		ID:        dto.ID,
		Name:      dto.Name,
		Price:     dto.Price,
		Allergens: dto.Allergens,
		Available: dto.Available,
	}.toDomain()
}
