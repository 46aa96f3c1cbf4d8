package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
)

type CartRepository interface {
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Update writes the whole cart, lines and total, in one statement.
	Update(ctx context.Context, aggregate *cart.Cart) error

	// GetByUser returns errs.ErrObjectNotFound when the user has no cart yet.
	GetByUser(ctx context.Context, userID kernel.UUID) (*cart.Cart, error)
}
