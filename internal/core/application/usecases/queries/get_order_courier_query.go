package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrderCourierQueryIsNotConstructed = errors.New(
	"GetOrderCourierQuery must be created via NewGetOrderCourierQuery constructor",
)

// GetOrderCourierQuery reads the courier assigned to an order.
type GetOrderCourierQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderCourierQuery(orderID kernel.UUID) (GetOrderCourierQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderCourierQuery{}, err
	}
	return GetOrderCourierQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderCourierQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderCourierQueryIsNotConstructed)
}

func (q GetOrderCourierQuery) OrderID() kernel.UUID {
	return q.orderID
}

type GetOrderCourierQueryResponse struct {
	ID          kernel.UUID `json:"id"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber"`
}
