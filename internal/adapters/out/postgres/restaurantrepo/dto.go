// Package restaurantrepo persists restaurants.
package restaurantrepo

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
)

type RestaurantDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"not null"`
	Address string    `gorm:"not null"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

func fromDomain(r *restaurant.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:      r.ID().Bytes(),
		Name:    r.Name(),
		Address: r.Address(),
	}
}

func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFrom(dto.ID)
	if err != nil {
		return nil, err
	}
	return restaurant.NewRestaurant(id, dto.Name, dto.Address)
}
