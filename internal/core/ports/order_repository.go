package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Claim persists a courier assignment only if the stored order has no
	// courier yet. A lost race is reported as errs.ErrConflict.
	Claim(ctx context.Context, aggregate *order.Order) error

	Delete(ctx context.Context, aggregate *order.Order) error
}
