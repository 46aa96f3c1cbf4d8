package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateUserRolesCommandIsNotConstructed = errors.New(
	"UpdateUserRolesCommand must be created via NewUpdateUserRolesCommand constructor",
)

// UpdateUserRolesCommand replaces the role set of a user.
type UpdateUserRolesCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	roles  []user.Role

	guard guard.ConstructorGuard
}

func NewUpdateUserRolesCommand(userID kernel.UUID, roles []string) (UpdateUserRolesCommand, error) {
	cmd := UpdateUserRolesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setRoles(roles),
	); err != nil {
		return UpdateUserRolesCommand{}, err
	}

	return cmd, nil
}

func (c UpdateUserRolesCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUserRolesCommandIsNotConstructed)
}

func (c UpdateUserRolesCommand) UserID() kernel.UUID {
	return c.userID
}

func (c UpdateUserRolesCommand) Roles() []user.Role {
	return c.roles
}

func (c *UpdateUserRolesCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *UpdateUserRolesCommand) setRoles(roles []string) error {
	if len(roles) == 0 {
		return user.ErrRolesAreRequired
	}
	parsed, err := user.ParseRoles(roles)
	if err != nil {
		return err
	}
	c.roles = parsed
	return nil
}
