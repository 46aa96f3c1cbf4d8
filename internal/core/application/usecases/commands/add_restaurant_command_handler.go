package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
)

type AddRestaurantCommandHandler struct {
	uowFactory RestaurantUoWFactory
}

func NewAddRestaurantCommandHandler(uowFactory RestaurantUoWFactory) AddRestaurantCommandHandler {
	return AddRestaurantCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AddRestaurantCommandHandler) Handle(ctx context.Context, cmd AddRestaurantCommand) (*restaurant.Restaurant, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	r, err := restaurant.NewRestaurant(kernel.NewUUID(), cmd.Name(), cmd.Address())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RestaurantRepository().Add(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
