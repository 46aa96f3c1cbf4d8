package order

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
)

// Address is the delivery address as supplied by the client. Its shape is
// opaque to the domain; it only has to be a non-empty object.
type Address map[string]any

func (a Address) clone() Address {
	out := make(Address, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Order is the aggregate root of the order ledger. It carries the monetary
// breakdown of a checkout, the payment flag and the delivery lifecycle.
//
// Order follows these invariants:
//   - serviceFee and totalAmount are always produced by services.FeeCalculator
//     from subtotal and deliveryFee
//   - payment flips from false to true at most once; re-asserting it is a no-op
//   - courierID is set at most once, together with the move to Out for Delivery
//   - the status is always one of the closed Status set
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// userID is the customer who placed the order
	userID kernel.UUID

	// cartID is the cart the order was checked out from
	cartID kernel.UUID

	// restaurantID is the restaurant the cart ordered from, nil if none was chosen
	restaurantID *kernel.UUID

	address Address

	subtotal    decimal.Decimal
	serviceFee  decimal.Decimal
	deliveryFee decimal.Decimal
	totalAmount decimal.Decimal

	payment bool
	status  Status

	// courierID is the claiming courier, nil while the order is in the available pool
	courierID *kernel.UUID

	createdAt time.Time

	kernel.EventRecorder
	guard guard.ConstructorGuard
}

// NewOrder places an order in Pending status, unpaid and unassigned.
//
// Parameters:
//   - id, userID, cartID: valid identifiers
//   - restaurantID: restaurant snapshot taken from the cart, may be nil
//   - address: non-empty delivery address
//   - subtotal, deliveryFee: non-negative amounts fed to the fee calculator
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), userID, cartID, nil,
//	    order.Address{"street": "1 Main St"}, decimal.NewFromInt(50), decimal.NewFromInt(5))
//	o.ServiceFee()  // 7.5
//	o.TotalAmount() // 62.5
func NewOrder(
	id, userID, cartID kernel.UUID,
	restaurantID *kernel.UUID,
	address Address,
	subtotal, deliveryFee decimal.Decimal,
) (*Order, error) {
	o := &Order{
		status:       Pending,
		restaurantID: restaurantID,
		createdAt:    time.Now().UTC(),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setCartID(cartID),
		o.setAddress(address),
		o.setAmounts(subtotal, deliveryFee),
	); err != nil {
		return nil, err
	}

	o.record(EventPlaced)
	return o, nil
}

// Snapshot is the persisted form of an order used by RestoreOrder.
type Snapshot struct {
	ID           kernel.UUID
	UserID       kernel.UUID
	CartID       kernel.UUID
	RestaurantID *kernel.UUID
	Address      Address
	Subtotal     decimal.Decimal
	ServiceFee   decimal.Decimal
	DeliveryFee  decimal.Decimal
	TotalAmount  decimal.Decimal
	Payment      bool
	Status       Status
	CourierID    *kernel.UUID
	CreatedAt    time.Time
}

// RestoreOrder rebuilds an order from storage. Amounts are taken as stored.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		restaurantID: s.RestaurantID,
		payment:      s.Payment,
		createdAt:    s.CreatedAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setUserID(s.UserID),
		o.setCartID(s.CartID),
		o.setAddress(s.Address),
		o.setStatus(s.Status),
		o.setCourierID(s.CourierID),
		kernel.ValidateAmount("subtotal", s.Subtotal),
		kernel.ValidateAmount("serviceFee", s.ServiceFee),
		kernel.ValidateAmount("deliveryFee", s.DeliveryFee),
		kernel.ValidateAmount("totalAmount", s.TotalAmount),
	); err != nil {
		return nil, err
	}

	o.subtotal = s.Subtotal
	o.serviceFee = s.ServiceFee
	o.deliveryFee = s.DeliveryFee
	o.totalAmount = s.TotalAmount
	return o, nil
}

// Validate ensures the order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) UserID() kernel.UUID {
	return o.userID
}

func (o *Order) CartID() kernel.UUID {
	return o.cartID
}

func (o *Order) RestaurantID() *kernel.UUID {
	return o.restaurantID
}

// Address returns a copy of the delivery address.
func (o *Order) Address() Address {
	return o.address.clone()
}

func (o *Order) Subtotal() decimal.Decimal {
	return o.subtotal
}

func (o *Order) ServiceFee() decimal.Decimal {
	return o.serviceFee
}

func (o *Order) DeliveryFee() decimal.Decimal {
	return o.deliveryFee
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// IsPaid reports whether payment has been confirmed.
func (o *Order) IsPaid() bool {
	return o.payment
}

func (o *Order) Status() Status {
	return o.status
}

// Courier returns the claiming courier, or nil when unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// PaymentReference is the reference sent to the payment collaborator.
func (o *Order) PaymentReference() string {
	return "order-" + o.id.String()
}

// MarkPaid records a confirmed payment. It returns false when the order was
// already paid, in which case nothing changes.
func (o *Order) MarkPaid() bool {
	if o.payment {
		return false
	}
	o.payment = true
	o.record(EventPaid)
	return true
}

// Reject records that payment was refused. The caller deletes the order afterwards.
func (o *Order) Reject() {
	o.record(EventRejected)
}

// Commit assigns the order to courierID and moves it to Out for Delivery.
// An order already holding a courier yields a Conflict error; any unassigned
// order can be claimed whatever its status.
//
// The check here runs on the loaded copy; persistence repeats it atomically
// so that concurrent claims still have exactly one winner.
func (o *Order) Commit(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return errs.NewConflictError("order", o.id.String(), "courier already assigned")
	}

	o.status = OutForDelivery
	o.courierID = &courierID
	o.record(EventCommitted)
	return nil
}

// ChangeStatus overwrites the status with any valid value. Monotonicity is not
// enforced.
func (o *Order) ChangeStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == o.status {
		return nil
	}

	o.status = status
	o.record(EventStatusChanged)
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setCartID(cartID kernel.UUID) error {
	if err := cartID.Validate(); err != nil {
		return err
	}
	o.cartID = cartID
	return nil
}

func (o *Order) setAddress(address Address) error {
	if len(address) == 0 {
		return ErrAddressIsRequired
	}
	o.address = address.clone()
	return nil
}

func (o *Order) setAmounts(subtotal, deliveryFee decimal.Decimal) error {
	totals, err := services.NewFeeCalculator().Compute(subtotal, deliveryFee)
	if err != nil {
		return err
	}

	o.subtotal = subtotal
	o.deliveryFee = deliveryFee
	o.serviceFee = totals.ServiceFee
	o.totalAmount = totals.TotalAmount
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setCourierID(courierID *kernel.UUID) error {
	if courierID == nil {
		o.courierID = nil
		return nil
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	id := *courierID
	o.courierID = &id
	return nil
}
