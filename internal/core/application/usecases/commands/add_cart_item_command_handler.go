package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// AddCartItemCommandHandler finds or creates the caller's cart and merges the
// item into it. The whole cart, items and total, is written in one transaction.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewAddCartItemCommandHandler(uowFactory CartUoWFactory) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the cart as persisted. A referenced restaurant must exist.
//
// When a concurrent first add creates the user's cart in between, the insert
// conflicts and the item is merged into that cart in a new transaction.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	c, err := h.apply(ctx, cmd)
	if errors.Is(err, errs.ErrConflict) {
		return h.apply(ctx, cmd)
	}
	return c, err
}

func (h AddCartItemCommandHandler) apply(ctx context.Context, cmd AddCartItemCommand) (*cart.Cart, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if cmd.RestaurantID() != nil {
		if _, err := uow.RestaurantRepository().Get(ctx, *cmd.RestaurantID()); err != nil {
			return nil, err
		}
	}

	cartRepo := uow.CartRepository()
	c, isNew, err := h.findOrCreate(ctx, cartRepo.GetByUser, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if err = c.AddItem(cmd.Name(), cmd.UnitPrice(), cmd.Quantity(), cmd.Note()); err != nil {
		return nil, err
	}

	if cmd.RestaurantID() != nil {
		if err = c.OrderFrom(*cmd.RestaurantID()); err != nil {
			return nil, err
		}
	}

	if isNew {
		err = cartRepo.Add(ctx, c)
	} else {
		err = cartRepo.Update(ctx, c)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func (h AddCartItemCommandHandler) findOrCreate(
	ctx context.Context,
	getByUser func(context.Context, kernel.UUID) (*cart.Cart, error),
	userID kernel.UUID,
) (*cart.Cart, bool, error) {
	c, err := getByUser(ctx, userID)
	if err == nil {
		return c, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	c, err = cart.NewCart(kernel.NewUUID(), userID)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}
