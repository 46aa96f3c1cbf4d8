// Package cartrepo persists carts. A cart is one row holding its lines as a
// JSON array, so writing items and total is a single statement.
package cartrepo

import (
	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CartDTO is the carts table row. user_id is unique: a user owns at most one cart.
type CartDTO struct {
	ID           uuid.UUID                        `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID                        `gorm:"type:uuid;uniqueIndex;not null"`
	RestaurantID *uuid.UUID                       `gorm:"type:uuid"`
	Items        datatypes.JSONSlice[CartItemDTO] `gorm:"not null"`
	TotalPrice   decimal.Decimal                  `gorm:"type:numeric;not null"`
}

func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO is one element of the items JSON array.
type CartItemDTO struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Note      string          `json:"note,omitempty"`
}

func fromDomain(c *cart.Cart) CartDTO {
	items := make([]CartItemDTO, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, CartItemDTO{
			Name:      item.Name(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
			Note:      item.Note(),
		})
	}

	var restaurantID *uuid.UUID
	if id := c.RestaurantID(); id != nil {
		raw := id.Bytes()
		restaurantID = &raw
	}

	return CartDTO{
		ID:           c.ID().Bytes(),
		UserID:       c.UserID().Bytes(),
		RestaurantID: restaurantID,
		Items:        datatypes.NewJSONSlice(items),
		TotalPrice:   c.TotalPrice(),
	}
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFrom(dto.ID)
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFrom(dto.UserID)
	if err != nil {
		return nil, err
	}

	var restaurantID *kernel.UUID
	if dto.RestaurantID != nil {
		rID, rErr := kernel.UUIDFrom(*dto.RestaurantID)
		if rErr != nil {
			return nil, rErr
		}
		restaurantID = &rID
	}

	items := make([]cart.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := cart.NewItem(itemDTO.Name, itemDTO.UnitPrice, itemDTO.Quantity, itemDTO.Note)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return cart.RestoreCart(id, userID, restaurantID, items)
}
