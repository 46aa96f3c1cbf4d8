package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
)

// CommitOrderCommandHandler assigns an order to an active courier.
//
// The aggregate check rejects orders that already show a courier. The
// repository Claim repeats it as a conditional update so that of several
// couriers racing for the same order exactly one wins and the others get
// errs.ErrConflict.
type CommitOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCommitOrderCommandHandler(uowFactory UoWFactory) CommitOrderCommandHandler {
	return CommitOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CommitOrderCommandHandler) Handle(ctx context.Context, cmd CommitOrderCommand) (*order.Order, error) {
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

	courier, err := uow.UserRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}
	if err = courier.CanDeliver(); err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Commit(cmd.CourierID()); err != nil {
		return nil, err
	}

	if err = orderRepo.Claim(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
