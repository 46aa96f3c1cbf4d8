package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCartQueryIsNotConstructed = errors.New("GetCartQuery must be created via NewGetCartQuery constructor")

// GetCartQuery reads the cart of one user.
//
// Example:
//
//	query, err := NewGetCartQuery(userID)
//	if err != nil {
//	    return err
//	}
//	cart, err := handler.Handle(ctx, query)
type GetCartQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCartQuery(userID kernel.UUID) (GetCartQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetCartQuery{}, err
	}
	return GetCartQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

func (q GetCartQuery) UserID() kernel.UUID {
	return q.userID
}

// CartItemResponse is one cart line.
type CartItemResponse struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Note      string          `json:"note,omitempty"`
}

// GetCartQueryResponse is the cart as shown to its owner. A user without a
// cart row gets an empty response with no ID.
type GetCartQueryResponse struct {
	ID           *kernel.UUID       `json:"id,omitempty"`
	RestaurantID *kernel.UUID       `json:"restaurantId,omitempty"`
	Items        []CartItemResponse `json:"items"`
	TotalPrice   decimal.Decimal    `json:"totalPrice"`
}

func emptyCart() GetCartQueryResponse {
	return GetCartQueryResponse{
		Items:      make([]CartItemResponse, 0),
		TotalPrice: decimal.Zero,
	}
}
