package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
	ErrItemNameIsRequired = errs.NewValueIsRequiredError("name")
	ErrQuantityIsInvalid  = errs.NewValueIsInvalidError("quantity")
)

// AddCartItemCommand adds units of a named item to the caller's cart.
// A zero quantity is treated as a single unit.
//
// Example:
//
//	cmd, err := NewAddCartItemCommand(userID, "Burger", decimal.NewFromInt(5), 2, "no onions", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid cart item: %w", err)
//	}
//
//	c, err := handler.Handle(ctx, cmd)
//	fmt.Println(c.TotalPrice()) // 10
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	userID       kernel.UUID
	name         string
	unitPrice    decimal.Decimal
	quantity     int
	note         string
	restaurantID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewAddCartItemCommand(
	userID kernel.UUID,
	name string,
	unitPrice decimal.Decimal,
	quantity int,
	note string,
	restaurantID *kernel.UUID,
) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setName(name),
		cmd.setUnitPrice(unitPrice),
		cmd.setQuantity(quantity),
		cmd.setRestaurantID(restaurantID),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

func (c AddCartItemCommand) UserID() kernel.UUID {
	return c.userID
}

func (c AddCartItemCommand) Name() string {
	return c.name
}

func (c AddCartItemCommand) UnitPrice() decimal.Decimal {
	return c.unitPrice
}

func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

func (c AddCartItemCommand) Note() string {
	return c.note
}

// RestaurantID is the restaurant the cart orders from, nil when the caller did not pick one.
func (c AddCartItemCommand) RestaurantID() *kernel.UUID {
	return c.restaurantID
}

func (c *AddCartItemCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *AddCartItemCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrItemNameIsRequired
	}
	c.name = name
	return nil
}

func (c *AddCartItemCommand) setUnitPrice(unitPrice decimal.Decimal) error {
	if err := kernel.ValidateAmount("unitPrice", unitPrice); err != nil {
		return err
	}
	c.unitPrice = unitPrice
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity < 0 {
		return ErrQuantityIsInvalid
	}
	if quantity > cart.MaxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, cart.MaxItemQuantity)
	}
	if quantity == 0 {
		quantity = 1
	}
	c.quantity = quantity
	return nil
}

func (c *AddCartItemCommand) setRestaurantID(restaurantID *kernel.UUID) error {
	if restaurantID == nil {
		return nil
	}
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	id := *restaurantID
	c.restaurantID = &id
	return nil
}
