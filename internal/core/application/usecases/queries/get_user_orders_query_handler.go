package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

const userOrdersSQL = `
	SELECT` + orderColumns + `,
		c.first_name,
		c.last_name,
		c.email
	FROM orders o
	LEFT JOIN users c ON c.id = o.courier_id
	WHERE o.user_id = ?
	ORDER BY o.created_at DESC, o.id`

type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle returns the caller's orders, newest first. Courier is nil while an
// order is unassigned or when the courier record no longer exists.
func (h GetUserOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUserOrdersQuery,
) ([]GetUserOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUserOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(userOrdersSQL, query.UserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var firstName, lastName, email sql.NullString

		view, scanErr := scanOrderView(rows, &firstName, &lastName, &email)
		if scanErr != nil {
			return nil, scanErr
		}

		response := GetUserOrdersQueryResponse{OrderView: view}
		if firstName.Valid {
			response.Courier = &CourierContact{
				FirstName: firstName.String,
				LastName:  lastName.String,
				Email:     email.String,
			}
		}
		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
