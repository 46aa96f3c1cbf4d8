package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/user"
)

type UpdateUserRolesCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewUpdateUserRolesCommandHandler(uowFactory UserUoWFactory) UpdateUserRolesCommandHandler {
	return UpdateUserRolesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the new role set. Removing the courier role also switches
// courier availability off.
func (h UpdateUserRolesCommandHandler) Handle(ctx context.Context, cmd UpdateUserRolesCommand) (*user.User, error) {
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

	userRepo := uow.UserRepository()
	u, err := userRepo.Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if err = u.SetRoles(cmd.Roles()); err != nil {
		return nil, err
	}

	if err = userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}
