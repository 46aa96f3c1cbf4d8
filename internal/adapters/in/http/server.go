// Package http exposes the use cases over a JSON API served by echo. Every
// reply is a Response envelope; errors from the use cases are classified with
// errors.Is and never escape as raw errors.
package http

import (
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	// Commands
	AddCartItem       commands.AddCartItemCommandHandler
	RemoveCartItem    commands.RemoveCartItemCommandHandler
	ClearCart         commands.ClearCartCommandHandler
	PlaceOrder        commands.PlaceOrderCommandHandler
	VerifyOrder       commands.VerifyOrderCommandHandler
	CommitOrder       commands.CommitOrderCommandHandler
	UpdateOrderStatus commands.UpdateOrderStatusCommandHandler
	UpdateUserRoles   commands.UpdateUserRolesCommandHandler
	SetCourierStatus  commands.SetCourierStatusCommandHandler
	AddRestaurant     commands.AddRestaurantCommandHandler

	// Queries
	GetCart                 queries.GetCartQueryHandler
	ListOrders              queries.ListOrdersQueryHandler
	GetUserOrders           queries.GetUserOrdersQueryHandler
	GetAvailableOrders      queries.GetAvailableOrdersQueryHandler
	GetOrderCourier         queries.GetOrderCourierQueryHandler
	GetOrderDeliveryDetails queries.GetOrderDeliveryDetailsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}
