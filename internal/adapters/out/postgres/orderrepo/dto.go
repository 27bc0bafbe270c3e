// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Cart lines, the delivery address and the masked payment are stored as JSON columns of the
// orders row, so an order is always read and written as one aggregate.
package orderrepo

import (
	"time"

	"pizzeria/internal/adapters/out/postgres/pizzarepo"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by customer and status for the read-model finders.
type OrderDTO struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Seq             int64       `gorm:"autoIncrement;uniqueIndex"`
	CustomerID      uuid.UUID   `gorm:"type:uuid;index"`
	Items           []ItemDTO   `gorm:"type:jsonb;serializer:json"`
	DeliveryAddress *AddressDTO `gorm:"type:jsonb;serializer:json"`
	Payment         *PaymentDTO `gorm:"type:jsonb;serializer:json"`
	Status          int         `gorm:"not null;index"`
	CreatedAt       time.Time   `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time   `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one cart line with the pizza snapshot it was priced from.
type ItemDTO struct {
	Pizza    pizzarepo.Snapshot `json:"pizza"`
	Quantity int                `json:"quantity"`
	Price    decimal.Decimal    `json:"price"`
}

type AddressDTO struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
	Instructions string `json:"instructions,omitempty"`
}

// PaymentDTO holds the payment as it leaves the domain: masked card number, no CVV.
type PaymentDTO struct {
	Method         string `json:"method"`
	CardNumber     string `json:"cardNumber,omitempty"`
	CardHolder     string `json:"cardHolder,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	BillingAddress string `json:"billingAddress,omitempty"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, ItemDTO{
			Pizza:    pizzarepo.SnapshotFromDomain(it.Pizza()),
			Quantity: it.Quantity(),
			Price:    it.Price().Amount(),
		})
	}

	var address *AddressDTO
	if a := o.DeliveryAddress(); a != nil {
		address = &AddressDTO{
			Street:       a.Street(),
			City:         a.City(),
			State:        a.State(),
			ZipCode:      a.ZipCode(),
			Country:      a.Country(),
			Instructions: a.Instructions(),
		}
	}

	var payment *PaymentDTO
	if p := o.Payment(); p != nil {
		payment = &PaymentDTO{
			Method:         string(p.Method()),
			CardNumber:     p.CardNumber(),
			CardHolder:     p.CardHolder(),
			ExpirationDate: p.ExpirationDate(),
			BillingAddress: p.BillingAddress(),
		}
	}

	return OrderDTO{
		ID:              o.ID().Bytes(),
		CustomerID:      o.CustomerID().Bytes(),
		Items:           items,
		DeliveryAddress: address,
		Payment:         payment,
		Status:          int(o.Status()),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var customerID kernel.UUID
	if dto.CustomerID != uuid.Nil {
		if customerID, err = kernel.UUIDFromBytes(dto.CustomerID[:]); err != nil {
			return nil, err
		}
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		snapshot, snapErr := it.Pizza.ToDomain()
		if snapErr != nil {
			return nil, snapErr
		}
		item, itemErr := order.RestoreItem(snapshot, it.Quantity, kernel.NewMoney(it.Price))
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var address *order.DeliveryAddress
	if a := dto.DeliveryAddress; a != nil {
		restored, addrErr := order.NewDeliveryAddress(a.Street, a.City, a.State, a.ZipCode, a.Country, a.Instructions)
		if addrErr != nil {
			return nil, addrErr
		}
		address = &restored
	}

	var payment *order.Payment
	if p := dto.Payment; p != nil {
		restored, payErr := order.RestorePayment(
			order.PaymentMethod(p.Method), p.CardNumber, p.CardHolder, p.ExpirationDate, p.BillingAddress,
		)
		if payErr != nil {
			return nil, payErr
		}
		payment = &restored
	}

	return order.RestoreOrder(
		id,
		customerID,
		items,
		address,
		payment,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
