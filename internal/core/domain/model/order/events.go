package order

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Event names double as message routing keys.
const (
	EventPlaced        = "order.placed"
	EventPaid          = "order.paid"
	EventRejected      = "order.rejected"
	EventCommitted     = "order.committed"
	EventStatusChanged = "order.status_changed"
)

// Event is the domain event raised by Order. It carries a snapshot of the
// fields consumers typically need so they do not have to read the order back.
type Event struct {
	ID          kernel.UUID     `json:"eventId"`
	Name        string          `json:"name"`
	OrderID     kernel.UUID     `json:"orderId"`
	UserID      kernel.UUID     `json:"userId"`
	Status      string          `json:"status"`
	Paid        bool            `json:"paid"`
	CourierID   *kernel.UUID    `json:"courierId,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	At          time.Time       `json:"occurredAt"`
}

func (e Event) EventID() kernel.UUID {
	return e.ID
}

func (e Event) EventName() string {
	return e.Name
}

func (e Event) AggregateID() kernel.UUID {
	return e.OrderID
}

func (e Event) OccurredAt() time.Time {
	return e.At
}

func (o *Order) record(name string) {
	var courierID *kernel.UUID
	if o.courierID != nil {
		id := *o.courierID
		courierID = &id
	}

	o.Record(Event{
		ID:          kernel.NewUUID(),
		Name:        name,
		OrderID:     o.id,
		UserID:      o.userID,
		Status:      o.status.String(),
		Paid:        o.payment,
		CourierID:   courierID,
		TotalAmount: o.totalAmount,
		At:          time.Now().UTC(),
	})
}
