package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand checks out the caller's cart into a new order.
//
// Subtotal and delivery fee are optional: a nil subtotal means the cart total
// is charged and a nil delivery fee means services.DefaultDeliveryFee.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(userID, order.Address{"hostel": "Block C"}, nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
//	// redirect the client to result.PaymentLink
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	userID      kernel.UUID
	address     order.Address
	subtotal    *decimal.Decimal
	deliveryFee *decimal.Decimal

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(
	userID kernel.UUID,
	address order.Address,
	subtotal *decimal.Decimal,
	deliveryFee *decimal.Decimal,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setAddress(address),
		cmd.setSubtotal(subtotal),
		cmd.setDeliveryFee(deliveryFee),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) UserID() kernel.UUID {
	return c.userID
}

func (c PlaceOrderCommand) Address() order.Address {
	return c.address
}

// Subtotal returns the explicit subtotal and whether one was supplied.
func (c PlaceOrderCommand) Subtotal() (decimal.Decimal, bool) {
	if c.subtotal == nil {
		return decimal.Zero, false
	}
	return *c.subtotal, true
}

// DeliveryFee returns the explicit delivery fee and whether one was supplied.
func (c PlaceOrderCommand) DeliveryFee() (decimal.Decimal, bool) {
	if c.deliveryFee == nil {
		return decimal.Zero, false
	}
	return *c.deliveryFee, true
}

func (c *PlaceOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *PlaceOrderCommand) setAddress(address order.Address) error {
	if len(address) == 0 {
		return order.ErrAddressIsRequired
	}
	c.address = address
	return nil
}

func (c *PlaceOrderCommand) setSubtotal(subtotal *decimal.Decimal) error {
	if subtotal == nil {
		return nil
	}
	if err := kernel.ValidateAmount("subtotal", *subtotal); err != nil {
		return err
	}
	value := *subtotal
	c.subtotal = &value
	return nil
}

func (c *PlaceOrderCommand) setDeliveryFee(deliveryFee *decimal.Decimal) error {
	if deliveryFee == nil {
		return nil
	}
	if err := kernel.ValidateAmount("deliveryFee", *deliveryFee); err != nil {
		return err
	}
	value := *deliveryFee
	c.deliveryFee = &value
	return nil
}
