// Package queries holds the read side: projections served straight from the
// database without loading aggregates.
package queries

import (
	"database/sql"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// orderColumns is the column list scanned by scanOrderView, aliased on o.
const orderColumns = `
	o.id,
	o.user_id,
	o.cart_id,
	o.restaurant_id,
	o.address,
	o.subtotal,
	o.service_fee,
	o.delivery_fee,
	o.total_amount,
	o.payment,
	o.status,
	o.courier_id,
	o.created_at`

// OrderView is the flattened order row returned by the listing queries.
type OrderView struct {
	ID           kernel.UUID     `json:"id"`
	UserID       kernel.UUID     `json:"userId"`
	CartID       kernel.UUID     `json:"cartId"`
	RestaurantID *kernel.UUID    `json:"restaurantId"`
	Address      map[string]any  `json:"address"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ServiceFee   decimal.Decimal `json:"serviceFee"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Payment      bool            `json:"payment"`
	Status       string          `json:"status"`
	CourierID    *kernel.UUID    `json:"courierId"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// scanOrderView reads orderColumns followed by any extra destinations.
func scanOrderView(rows *sql.Rows, extra ...any) (OrderView, error) {
	var (
		view                    OrderView
		id, userID, cartID      uuid.UUID
		restaurantID, courierID uuid.NullUUID
		address                 datatypes.JSONMap
		status                  int
	)

	dest := append([]any{
		&id,
		&userID,
		&cartID,
		&restaurantID,
		&address,
		&view.Subtotal,
		&view.ServiceFee,
		&view.DeliveryFee,
		&view.TotalAmount,
		&view.Payment,
		&status,
		&courierID,
		&view.CreatedAt,
	}, extra...)

	if err := rows.Scan(dest...); err != nil {
		return OrderView{}, err
	}

	var err error
	if view.ID, err = kernel.UUIDFrom(id); err != nil {
		return OrderView{}, err
	}
	if view.UserID, err = kernel.UUIDFrom(userID); err != nil {
		return OrderView{}, err
	}
	if view.CartID, err = kernel.UUIDFrom(cartID); err != nil {
		return OrderView{}, err
	}
	if view.RestaurantID, err = optionalUUID(restaurantID); err != nil {
		return OrderView{}, err
	}
	if view.CourierID, err = optionalUUID(courierID); err != nil {
		return OrderView{}, err
	}

	view.Address = map[string]any(address)
	if view.Address == nil {
		view.Address = map[string]any{}
	}
	view.Status = order.Status(status).String()

	return view, nil
}

func optionalUUID(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil //nolint:nilnil // NULL column
	}
	id, err := kernel.UUIDFrom(raw.UUID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
