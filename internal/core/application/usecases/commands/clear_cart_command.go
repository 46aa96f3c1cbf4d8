package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrClearCartCommandIsNotConstructed = errors.New(
	"ClearCartCommand must be created via NewClearCartCommand constructor",
)

// ClearCartCommand empties the caller's cart. The cart row itself is kept.
type ClearCartCommand struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClearCartCommand(userID kernel.UUID) (ClearCartCommand, error) {
	if err := userID.Validate(); err != nil {
		return ClearCartCommand{}, err
	}

	return ClearCartCommand{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

func (c ClearCartCommand) UserID() kernel.UUID {
	return c.userID
}
