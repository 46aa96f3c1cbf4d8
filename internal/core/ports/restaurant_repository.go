package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
)

type RestaurantRepository interface {
	Add(ctx context.Context, aggregate *restaurant.Restaurant) error

	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)
}
