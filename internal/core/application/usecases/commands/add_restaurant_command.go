package commands

import (
	"errors"

	"fooddelivery/internal/pkg/guard"
)

var ErrAddRestaurantCommandIsNotConstructed = errors.New(
	"AddRestaurantCommand must be created via NewAddRestaurantCommand constructor",
)

// AddRestaurantCommand registers a restaurant carts can order from.
// Name and address are validated by restaurant.NewRestaurant in the handler.
type AddRestaurantCommand struct {
	name    string
	address string

	guard guard.ConstructorGuard
}

func NewAddRestaurantCommand(name, address string) AddRestaurantCommand {
	return AddRestaurantCommand{
		name:    name,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}
}

func (c AddRestaurantCommand) Validate() error {
	return c.guard.Validate(ErrAddRestaurantCommandIsNotConstructed)
}

func (c AddRestaurantCommand) Name() string {
	return c.name
}

func (c AddRestaurantCommand) Address() string {
	return c.address
}
