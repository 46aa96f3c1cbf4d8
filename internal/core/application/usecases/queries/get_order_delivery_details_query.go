package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

const UnknownPlaceholder = "Unknown"

var ErrGetOrderDeliveryDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDeliveryDetailsQuery must be created via NewGetOrderDeliveryDetailsQuery constructor",
)

// GetOrderDeliveryDetailsQuery builds the courier's view of one delivery:
// who ordered, where from, where to and who carries it.
type GetOrderDeliveryDetailsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderDeliveryDetailsQuery(orderID kernel.UUID) (GetOrderDeliveryDetailsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDeliveryDetailsQuery{}, err
	}
	return GetOrderDeliveryDetailsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderDeliveryDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDeliveryDetailsQueryIsNotConstructed)
}

func (q GetOrderDeliveryDetailsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// PersonDetails identifies a customer or courier on campus.
type PersonDetails struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Matric string `json:"matric"`
}

type RestaurantDetails struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// GetOrderDeliveryDetailsQueryResponse degrades instead of failing: a missing
// customer or restaurant shows UnknownPlaceholder, a missing courier is nil.
type GetOrderDeliveryDetailsQueryResponse struct {
	Customer        PersonDetails     `json:"customer"`
	Restaurant      RestaurantDetails `json:"restaurant"`
	DeliveryAddress map[string]any    `json:"deliveryAddress"`
	Courier         *PersonDetails    `json:"courier"`
}
