// Package orderrepo persists the order ledger. Each Order aggregate maps to one
// row of the orders table; the delivery address is kept as a JSON document.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the orders table row. courier_id is indexed because the
// available pool is selected by courier_id IS NULL.
type OrderDTO struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID         `gorm:"type:uuid;index;not null"`
	CartID       uuid.UUID         `gorm:"type:uuid;not null"`
	RestaurantID *uuid.UUID        `gorm:"type:uuid"`
	Address      datatypes.JSONMap `gorm:"not null"`
	Subtotal     decimal.Decimal   `gorm:"type:numeric;not null"`
	ServiceFee   decimal.Decimal   `gorm:"type:numeric;not null"`
	DeliveryFee  decimal.Decimal   `gorm:"type:numeric;not null"`
	TotalAmount  decimal.Decimal   `gorm:"type:numeric;not null"`
	Payment      bool              `gorm:"not null;default:false"`
	Status       int               `gorm:"not null"`
	CourierID    *uuid.UUID        `gorm:"type:uuid;index"`
	CreatedAt    time.Time         `gorm:"not null;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:           o.ID().Bytes(),
		UserID:       o.UserID().Bytes(),
		CartID:       o.CartID().Bytes(),
		RestaurantID: optionalID(o.RestaurantID()),
		Address:      datatypes.JSONMap(o.Address()),
		Subtotal:     o.Subtotal(),
		ServiceFee:   o.ServiceFee(),
		DeliveryFee:  o.DeliveryFee(),
		TotalAmount:  o.TotalAmount(),
		Payment:      o.IsPaid(),
		Status:       int(o.Status()),
		CourierID:    optionalID(o.Courier()),
		CreatedAt:    o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFrom(dto.ID)
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFrom(dto.UserID)
	if err != nil {
		return nil, err
	}

	cartID, err := kernel.UUIDFrom(dto.CartID)
	if err != nil {
		return nil, err
	}

	restaurantID, err := restoreOptionalID(dto.RestaurantID)
	if err != nil {
		return nil, err
	}

	courierID, err := restoreOptionalID(dto.CourierID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           id,
		UserID:       userID,
		CartID:       cartID,
		RestaurantID: restaurantID,
		Address:      order.Address(dto.Address),
		Subtotal:     dto.Subtotal,
		ServiceFee:   dto.ServiceFee,
		DeliveryFee:  dto.DeliveryFee,
		TotalAmount:  dto.TotalAmount,
		Payment:      dto.Payment,
		Status:       order.Status(dto.Status),
		CourierID:    courierID,
		CreatedAt:    dto.CreatedAt,
	})
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreOptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := kernel.UUIDFrom(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
