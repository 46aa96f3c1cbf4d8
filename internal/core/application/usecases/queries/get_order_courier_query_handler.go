package queries

import (
	"context"
	"database/sql"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const orderCourierSQL = `
	SELECT
		o.courier_id,
		c.first_name,
		c.last_name,
		c.email,
		c.phone_number
	FROM orders o
	LEFT JOIN users c ON c.id = o.courier_id
	WHERE o.id = ?`

type GetOrderCourierQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderCourierQueryHandler(db *gorm.DB) GetOrderCourierQueryHandler {
	return GetOrderCourierQueryHandler{db: db}
}

// Handle returns nil without error while the order is unassigned. A missing
// order is errs.ErrObjectNotFound.
func (h GetOrderCourierQueryHandler) Handle(
	ctx context.Context,
	query GetOrderCourierQuery,
) (*GetOrderCourierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(orderCourierSQL, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	var (
		courierID                         uuid.NullUUID
		firstName, lastName, email, phone sql.NullString
	)
	if err = rows.Scan(&courierID, &firstName, &lastName, &email, &phone); err != nil {
		return nil, err
	}

	if !courierID.Valid || !firstName.Valid {
		return nil, rows.Err()
	}

	id, err := kernel.UUIDFrom(courierID.UUID)
	if err != nil {
		return nil, err
	}

	return &GetOrderCourierQueryResponse{
		ID:          id,
		FirstName:   firstName.String,
		LastName:    lastName.String,
		Email:       email.String,
		PhoneNumber: phone.String,
	}, rows.Err()
}
