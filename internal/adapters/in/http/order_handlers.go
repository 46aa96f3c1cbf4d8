package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest carries the checkout body. Older clients send the
// subtotal as "amount"; "subtotal" wins when both are present.
type PlaceOrderRequest struct {
	Address     map[string]any   `json:"address" validate:"required"`
	Subtotal    *decimal.Decimal `json:"subtotal"`
	Amount      *decimal.Decimal `json:"amount"`
	DeliveryFee *decimal.Decimal `json:"deliveryFee"`
}

func (r PlaceOrderRequest) subtotal() *decimal.Decimal {
	if r.Subtotal != nil {
		return r.Subtotal
	}
	return r.Amount
}

type PlaceOrderResponse struct {
	OrderID     kernel.UUID     `json:"orderId"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ServiceFee  decimal.Decimal `json:"serviceFee"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaymentURL  string          `json:"paymentUrl,omitempty"`
}

// flexBool accepts both true and "true", as gateway redirects forward query
// string values verbatim.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = flexBool(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = flexBool(v)
	return nil
}

type VerifyOrderRequest struct {
	OrderID       uuid.UUID `json:"orderId" validate:"required"`
	Success       flexBool  `json:"success"`
	TransactionID string    `json:"transactionId"`
}

type CommitOrderRequest struct {
	// CourierID lets an admin assign on behalf of a courier.
	CourierID *uuid.UUID `json:"courierId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func orderView(o *order.Order) queries.OrderView {
	return queries.OrderView{
		ID:           o.ID(),
		UserID:       o.UserID(),
		CartID:       o.CartID(),
		RestaurantID: o.RestaurantID(),
		Address:      map[string]any(o.Address()),
		Subtotal:     o.Subtotal(),
		ServiceFee:   o.ServiceFee(),
		DeliveryFee:  o.DeliveryFee(),
		TotalAmount:  o.TotalAmount(),
		Payment:      o.IsPaid(),
		Status:       o.Status().String(),
		CourierID:    o.Courier(),
		CreatedAt:    o.CreatedAt(),
	}
}

// PlaceOrder handles POST /api/v1/orders. When the gateway cannot be reached
// the order stays persisted and its ID is returned with the failure.
func (s *Server) PlaceOrder(c echo.Context) error {
	identity, _ := identityFrom(c)

	var req PlaceOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, s.logger, err, "Error placing order")
	}

	cmd, err := commands.NewPlaceOrderCommand(identity.UserID, order.Address(req.Address), req.subtotal(), req.DeliveryFee)
	if err != nil {
		return writeError(c, s.logger, err, "Error placing order")
	}

	result, err := s.handlers.PlaceOrder.Handle(c.Request().Context(), cmd)
	response := PlaceOrderResponse{
		OrderID:     result.OrderID,
		Subtotal:    result.Subtotal,
		ServiceFee:  result.ServiceFee,
		DeliveryFee: result.DeliveryFee,
		TotalAmount: result.TotalAmount,
		PaymentURL:  result.PaymentLink,
	}

	if errors.Is(err, errs.ErrExternalService) {
		return c.JSON(http.StatusBadGateway, Response{
			Success: false,
			Message: "Payment initiation failed",
			Data:    response,
		})
	}
	if err != nil {
		return writeError(c, s.logger, err, "Error placing order")
	}

	return respond(c, http.StatusCreated, "Order placed", response)
}

// VerifyOrder handles POST /api/v1/orders/verify, called after the gateway
// redirect. A failed redirect removes the order and answers "Not Paid".
func (s *Server) VerifyOrder(c echo.Context) error {
	var req VerifyOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, s.logger, err, "Error verifying order")
	}

	orderID, err := kernel.UUIDFrom(req.OrderID)
	if err != nil {
		return writeError(c, s.logger, err, "Error verifying order")
	}

	cmd, err := commands.NewVerifyOrderCommand(orderID, bool(req.Success), req.TransactionID)
	if err != nil {
		return writeError(c, s.logger, err, "Error verifying order")
	}

	result, err := s.handlers.VerifyOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err, "Payment verification failed")
	}

	switch {
	case result.AlreadyPaid:
		return respond(c, http.StatusOK, "Already paid", nil)
	case result.Paid:
		return respond(c, http.StatusOK, "Paid", nil)
	default:
		return fail(c, http.StatusOK, "Not Paid")
	}
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	orders, err := s.handlers.ListOrders.Handle(c.Request().Context(), queries.NewListOrdersQuery())
	if err != nil {
		return writeError(c, s.logger, err, "Error fetching orders")
	}
	return respond(c, http.StatusOK, "Orders fetched", orders)
}

// GetUserOrders handles GET /api/v1/orders/mine.
func (s *Server) GetUserOrders(c echo.Context) error {
	identity, _ := identityFrom(c)

	query, err := queries.NewGetUserOrdersQuery(identity.UserID)
	if err != nil {
		return writeError(c, s.logger, err, "Error fetching user orders")
	}

	orders, err := s.handlers.GetUserOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err, "Error fetching user orders")
	}
	return respond(c, http.StatusOK, "Orders fetched", orders)
}

// GetAvailableOrders handles GET /api/v1/orders/available.
func (s *Server) GetAvailableOrders(c echo.Context) error {
	orders, err := s.handlers.GetAvailableOrders.Handle(c.Request().Context(), queries.NewGetAvailableOrdersQuery())
	if err != nil {
		return writeError(c, s.logger, err, "Error fetching available orders")
	}
	return respond(c, http.StatusOK, "Available orders fetched", orders)
}

// CommitOrder handles POST /api/v1/orders/:orderId/commit. Couriers claim for
// themselves; an admin may name the courier.
func (s *Server) CommitOrder(c echo.Context) error {
	identity, _ := identityFrom(c)

	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return writeError(c, s.logger, err, "Error committing to order")
	}

	var req CommitOrderRequest
	if err = bindAndValidate(c, &req); err != nil {
		return writeError(c, s.logger, err, "Error committing to order")
	}

	courierID := identity.UserID
	if req.CourierID != nil {
		requested, idErr := kernel.UUIDFrom(*req.CourierID)
		if idErr != nil {
			return writeError(c, s.logger, idErr, "Error committing to order")
		}
		if !identity.IsSelf(requested) && !identity.HasRole(user.RoleAdmin) {
			return fail(c, http.StatusForbidden, "Couriers can only commit for themselves")
		}
		courierID = requested
	}

	cmd, err := commands.NewCommitOrderCommand(orderID, courierID)
	if err != nil {
		return writeError(c, s.logger, err, "Error committing to order")
	}

	committed, err := s.handlers.CommitOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return fail(c, http.StatusConflict, "Order already assigned to a courier")
		}
		return writeError(c, s.logger, err, "Error committing to order")
	}

	return respond(c, http.StatusOK, "Order committed successfully", orderView(committed))
}

// UpdateStatus handles PUT /api/v1/orders/:orderId/status.
func (s *Server) UpdateStatus(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return writeError(c, s.logger, err, "Error updating status")
	}

	var req UpdateStatusRequest
	if err = bindAndValidate(c, &req); err != nil {
		return writeError(c, s.logger, err, "Error updating status")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, req.Status)
	if err != nil {
		return writeError(c, s.logger, err, "Error updating status")
	}

	updated, err := s.handlers.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err, "Error updating status")
	}

	return respond(c, http.StatusOK, "Status Updated", orderView(updated))
}

// GetOrderCourier handles GET /api/v1/orders/:orderId/courier.
func (s *Server) GetOrderCourier(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return writeError(c, s.logger, err, "Error fetching order courier details")
	}

	query, err := queries.NewGetOrderCourierQuery(orderID)
	if err != nil {
		return writeError(c, s.logger, err, "Error fetching order courier details")
	}

	courier, err := s.handlers.GetOrderCourier.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err, "Error fetching order courier details")
	}
	if courier == nil {
		return respond(c, http.StatusOK, "No courier assigned yet", nil)
	}

	return respond(c, http.StatusOK, "Courier fetched", courier)
}

// GetOrderDeliveryDetails handles GET /api/v1/orders/:orderId/delivery.
func (s *Server) GetOrderDeliveryDetails(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return writeError(c, s.logger, err, "Error fetching delivery details")
	}

	query, err := queries.NewGetOrderDeliveryDetailsQuery(orderID)
	if err != nil {
		return writeError(c, s.logger, err, "Error fetching delivery details")
	}

	details, err := s.handlers.GetOrderDeliveryDetails.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err, "Error fetching delivery details")
	}

	return respond(c, http.StatusOK, "Delivery details fetched", details)
}
