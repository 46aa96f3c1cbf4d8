package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrSetCourierStatusCommandIsNotConstructed = errors.New(
	"SetCourierStatusCommand must be created via NewSetCourierStatusCommand constructor",
)

// SetCourierStatusCommand switches a courier between active and inactive.
// Only active couriers may claim orders.
type SetCourierStatusCommand struct {
	userID kernel.UUID
	active bool

	guard guard.ConstructorGuard
}

func NewSetCourierStatusCommand(userID kernel.UUID, active bool) (SetCourierStatusCommand, error) {
	if err := userID.Validate(); err != nil {
		return SetCourierStatusCommand{}, err
	}

	return SetCourierStatusCommand{
		userID: userID,
		active: active,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c SetCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierStatusCommandIsNotConstructed)
}

func (c SetCourierStatusCommand) UserID() kernel.UUID {
	return c.userID
}

func (c SetCourierStatusCommand) Active() bool {
	return c.active
}
