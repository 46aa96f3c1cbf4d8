package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/cart"
)

// RemoveCartItemCommandHandler decrements an item or drops its line when a
// single unit is left. A missing cart or item is reported as not found.
type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	c, err := cartRepo.GetByUser(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if err = c.RemoveItem(cmd.Name()); err != nil {
		return nil, err
	}

	if err = cartRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
