package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/user"
)

type SetCourierStatusCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewSetCourierStatusCommandHandler(uowFactory UserUoWFactory) SetCourierStatusCommandHandler {
	return SetCourierStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle fails with a forbidden error when the user does not hold the courier role.
func (h SetCourierStatusCommandHandler) Handle(ctx context.Context, cmd SetCourierStatusCommand) (*user.User, error) {
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

	if err = u.SetCourierActive(cmd.Active()); err != nil {
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
