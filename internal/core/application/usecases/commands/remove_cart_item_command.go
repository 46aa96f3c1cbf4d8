package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrRemoveCartItemCommandIsNotConstructed = errors.New(
	"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
)

// RemoveCartItemCommand takes one unit of the named item out of the caller's cart.
type RemoveCartItemCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	name   string

	guard guard.ConstructorGuard
}

func NewRemoveCartItemCommand(userID kernel.UUID, name string) (RemoveCartItemCommand, error) {
	cmd := RemoveCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setName(name),
	); err != nil {
		return RemoveCartItemCommand{}, err
	}

	return cmd, nil
}

func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

func (c RemoveCartItemCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RemoveCartItemCommand) Name() string {
	return c.name
}

func (c *RemoveCartItemCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *RemoveCartItemCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrItemNameIsRequired
	}
	c.name = name
	return nil
}
