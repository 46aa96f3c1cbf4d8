package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrCommitOrderCommandIsNotConstructed = errors.New(
	"CommitOrderCommand must be created via NewCommitOrderCommand constructor",
)

// CommitOrderCommand claims an order for a courier.
//
// Example:
//
//	cmd, _ := NewCommitOrderCommand(orderID, courierID)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // another courier was faster
//	}
type CommitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCommitOrderCommand(orderID, courierID kernel.UUID) (CommitOrderCommand, error) {
	cmd := CommitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return CommitOrderCommand{}, err
	}

	return cmd, nil
}

func (c CommitOrderCommand) Validate() error {
	return c.guard.Validate(ErrCommitOrderCommandIsNotConstructed)
}

func (c CommitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CommitOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *CommitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CommitOrderCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}
