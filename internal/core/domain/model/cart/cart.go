package cart

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")
	ErrDuplicateItemName    = errors.New("cart already holds an item with this name")
)

// Cart is the aggregate root holding a user's pending selection.
//
// Cart follows these invariants:
//   - Every line has a distinct name
//   - Every line has quantity in [1, MaxItemQuantity]; a line whose quantity would drop to zero is removed
//   - totalPrice equals Σ unitPrice × quantity and is recomputed after each mutation
//
// Example:
//
//	c, _ := cart.NewCart(kernel.NewUUID(), userID)
//	_ = c.AddItem("Burger", decimal.NewFromInt(5), 2, "")
//	_ = c.AddItem("Burger", decimal.NewFromInt(5), 1, "")
//	c.Items()[0].Quantity() // 3
//	c.TotalPrice()          // 15
type Cart struct {
	id           kernel.UUID
	userID       kernel.UUID
	restaurantID *kernel.UUID
	items        []Item
	totalPrice   decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCart creates an empty cart owned by userID.
func NewCart(id kernel.UUID, userID kernel.UUID) (*Cart, error) {
	c := &Cart{
		items:      make([]Item, 0),
		totalPrice: decimal.Zero,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setUserID(userID),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCart rebuilds a cart from persisted state. The total is recomputed
// from the lines rather than trusted from storage.
func RestoreCart(id kernel.UUID, userID kernel.UUID, restaurantID *kernel.UUID, items []Item) (*Cart, error) {
	c := &Cart{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setUserID(userID),
		c.setItems(items),
	); err != nil {
		return nil, err
	}

	c.restaurantID = restaurantID
	c.recomputeTotal()
	return c, nil
}

// Validate ensures the cart was created through NewCart or RestoreCart.
func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

func (c *Cart) ID() kernel.UUID {
	return c.id
}

func (c *Cart) UserID() kernel.UUID {
	return c.userID
}

// RestaurantID returns the restaurant the cart orders from, or nil.
func (c *Cart) RestaurantID() *kernel.UUID {
	return c.restaurantID
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) TotalPrice() decimal.Decimal {
	return c.totalPrice
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// AddItem merges quantity into the line called name, or appends a new line.
// When the line already exists only its quantity changes; unit price and note
// of the first addition are kept. A merge past MaxItemQuantity is rejected and
// leaves the cart unchanged.
func (c *Cart) AddItem(name string, unitPrice decimal.Decimal, quantity int, note string) error {
	item, err := NewItem(name, unitPrice, quantity, note)
	if err != nil {
		return err
	}

	if idx := c.indexOf(item.Name()); idx >= 0 {
		existing := c.items[idx]
		merged := existing.Quantity() + item.Quantity()
		if merged > MaxItemQuantity {
			return errs.NewValueIsOutOfRangeError("quantity", merged, 1, MaxItemQuantity)
		}
		c.items[idx] = existing.withQuantity(merged)
	} else {
		c.items = append(c.items, item)
	}

	c.recomputeTotal()
	return nil
}

// RemoveItem decrements the line called name by one, dropping it when its
// quantity was 1. The name is trimmed like in AddItem. A missing line is reported as ObjectNotFound.
func (c *Cart) RemoveItem(name string) error {
	name = strings.TrimSpace(name)
	idx := c.indexOf(name)
	if idx < 0 {
		return errs.NewObjectNotFoundError("cart item", name)
	}

	if existing := c.items[idx]; existing.Quantity() > 1 {
		c.items[idx] = existing.withQuantity(existing.Quantity() - 1)
	} else {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
	}

	c.recomputeTotal()
	return nil
}

// Clear empties the cart and forgets the restaurant it was ordering from.
func (c *Cart) Clear() {
	c.items = make([]Item, 0)
	c.restaurantID = nil
	c.recomputeTotal()
}

// OrderFrom records the restaurant the cart orders from.
func (c *Cart) OrderFrom(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	c.restaurantID = &restaurantID
	return nil
}

func (c *Cart) indexOf(name string) int {
	for i, item := range c.items {
		if item.Name() == name {
			return i
		}
	}
	return -1
}

func (c *Cart) recomputeTotal() {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	c.totalPrice = total
}

func (c *Cart) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Cart) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *Cart) setItems(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	restored := make([]Item, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, ok := seen[item.Name()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateItemName, item.Name())
		}
		seen[item.Name()] = struct{}{}
		restored = append(restored, item)
	}
	c.items = restored
	return nil
}
