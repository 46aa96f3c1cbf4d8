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

// MaxItemQuantity bounds the quantity of a single line.
const MaxItemQuantity = 10000

var (
	ErrItemNameIsRequired   = errs.NewValueIsRequiredError("itemName")
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is one line of a cart. It is immutable; quantity changes produce a new Item.
type Item struct {
	name      string
	unitPrice decimal.Decimal
	quantity  int
	note      string

	guard guard.ConstructorGuard
}

// NewItem validates and builds a line item.
// The name is trimmed and required, unitPrice must not be negative and
// quantity must lie in [1, MaxItemQuantity].
func NewItem(name string, unitPrice decimal.Decimal, quantity int, note string) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	item.note = strings.TrimSpace(note)
	return item, nil
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) Name() string {
	return i.name
}

func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) Note() string {
	return i.note
}

// LineTotal returns unitPrice × quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i Item) withQuantity(quantity int) Item {
	i.quantity = quantity
	return i
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrItemNameIsRequired
	}
	i.name = name
	return nil
}

func (i *Item) setUnitPrice(unitPrice decimal.Decimal) error {
	if err := kernel.ValidateAmount("unitPrice", unitPrice); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	if quantity > MaxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxItemQuantity)
	}
	i.quantity = quantity
	return nil
}
