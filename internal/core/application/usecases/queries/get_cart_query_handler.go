package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetCartQueryHandler reads a cart row directly. A missing cart is not an
// error: the empty cart is returned instead.
type GetCartQueryHandler struct {
	db *gorm.DB
}

func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			restaurant_id,
			items,
			total_price
		FROM carts
		WHERE user_id = ?
	`, query.UserID().Bytes()).Rows()
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetCartQueryResponse{}, err
		}
		return emptyCart(), nil
	}

	var (
		response     GetCartQueryResponse
		id           uuid.UUID
		restaurantID uuid.NullUUID
		items        datatypes.JSONSlice[CartItemResponse]
	)
	if err = rows.Scan(&id, &restaurantID, &items, &response.TotalPrice); err != nil {
		return GetCartQueryResponse{}, err
	}

	cartID, err := kernel.UUIDFrom(id)
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	response.ID = &cartID

	if response.RestaurantID, err = optionalUUID(restaurantID); err != nil {
		return GetCartQueryResponse{}, err
	}

	response.Items = make([]CartItemResponse, 0, len(items))
	response.Items = append(response.Items, items...)

	return response, rows.Err()
}
