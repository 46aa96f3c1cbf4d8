package queries

import (
	"context"
	"database/sql"
	"strings"

	"fooddelivery/internal/pkg/errs"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const deliveryDetailsSQL = `
	SELECT
		o.address,
		u.first_name,
		u.last_name,
		u.phone_number,
		u.matric_number,
		r.name,
		r.address,
		c.first_name,
		c.last_name,
		c.phone_number,
		c.matric_number
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id
	LEFT JOIN restaurants r ON r.id = o.restaurant_id
	LEFT JOIN users c ON c.id = o.courier_id
	WHERE o.id = ?`

type GetOrderDeliveryDetailsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDeliveryDetailsQueryHandler(db *gorm.DB) GetOrderDeliveryDetailsQueryHandler {
	return GetOrderDeliveryDetailsQueryHandler{db: db}
}

// personRow holds the nullable columns of a joined users row.
type personRow struct {
	firstName, lastName, phone, matric sql.NullString
}

func (p *personRow) dest() []any {
	return []any{&p.firstName, &p.lastName, &p.phone, &p.matric}
}

func (p *personRow) details() *PersonDetails {
	if !p.firstName.Valid {
		return nil
	}
	return &PersonDetails{
		Name:   strings.TrimSpace(p.firstName.String + " " + p.lastName.String),
		Phone:  p.phone.String,
		Matric: p.matric.String,
	}
}

// Handle returns errs.ErrObjectNotFound only when the order itself is missing.
func (h GetOrderDeliveryDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDeliveryDetailsQuery,
) (GetOrderDeliveryDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDeliveryDetailsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(deliveryDetailsSQL, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderDeliveryDetailsQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderDeliveryDetailsQueryResponse{}, err
		}
		return GetOrderDeliveryDetailsQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	var (
		address                  datatypes.JSONMap
		customer, courier        personRow
		restaurantName, restAddr sql.NullString
	)

	dest := []any{&address}
	dest = append(dest, customer.dest()...)
	dest = append(dest, &restaurantName, &restAddr)
	dest = append(dest, courier.dest()...)

	if err = rows.Scan(dest...); err != nil {
		return GetOrderDeliveryDetailsQueryResponse{}, err
	}

	response := GetOrderDeliveryDetailsQueryResponse{
		Customer:        PersonDetails{Name: UnknownPlaceholder},
		Restaurant:      RestaurantDetails{Name: orUnknown(restaurantName), Address: orUnknown(restAddr)},
		DeliveryAddress: map[string]any(address),
		Courier:         courier.details(),
	}
	if details := customer.details(); details != nil {
		response.Customer = *details
	}
	if response.DeliveryAddress == nil {
		response.DeliveryAddress = map[string]any{}
	}

	return response, rows.Err()
}

func orUnknown(value sql.NullString) string {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return UnknownPlaceholder
	}
	return value.String
}
