package queries

import (
	"context"

	"gorm.io/gorm"
)

const availableOrdersSQL = `
	SELECT` + orderColumns + `
	FROM orders o
	WHERE o.courier_id IS NULL
	ORDER BY o.created_at, o.id`

type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle returns every order without a courier, oldest first.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]OrderView, 0)

	rows, err := h.db.WithContext(ctx).Raw(availableOrdersSQL).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanOrderView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
