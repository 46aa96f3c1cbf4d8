package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AddToCartRequest struct {
	Name         string           `json:"name" validate:"required"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	Quantity     int              `json:"quantity" validate:"gte=0"`
	Note         string           `json:"note"`
	RestaurantID *uuid.UUID       `json:"restaurantId"`
}

// cartView renders a cart aggregate the same way GetCart reads it.
func cartView(c *cart.Cart) queries.GetCartQueryResponse {
	id := c.ID()
	items := make([]queries.CartItemResponse, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, queries.CartItemResponse{
			Name:      item.Name(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
			Note:      item.Note(),
		})
	}
	return queries.GetCartQueryResponse{
		ID:           &id,
		RestaurantID: c.RestaurantID(),
		Items:        items,
		TotalPrice:   c.TotalPrice(),
	}
}

// AddToCart handles POST /api/v1/cart/items.
func (s *Server) AddToCart(c echo.Context) error {
	identity, _ := identityFrom(c)

	var req AddToCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, s.logger, err, "Error adding to cart")
	}

	var restaurantID *kernel.UUID
	if req.RestaurantID != nil {
		id, err := kernel.UUIDFrom(*req.RestaurantID)
		if err != nil {
			return writeError(c, s.logger, err, "Error adding to cart")
		}
		restaurantID = &id
	}

	cmd, err := commands.NewAddCartItemCommand(identity.UserID, req.Name, *req.Price, req.Quantity, req.Note, restaurantID)
	if err != nil {
		return writeError(c, s.logger, err, "Error adding to cart")
	}

	updated, err := s.handlers.AddCartItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err, "Error adding to cart")
	}

	return respond(c, http.StatusOK, "Added to cart", cartView(updated))
}

// RemoveFromCart handles DELETE /api/v1/cart/items/:itemName. One unit is
// removed per call.
func (s *Server) RemoveFromCart(c echo.Context) error {
	identity, _ := identityFrom(c)

	name, err := textParam(c, "itemName")
	if err != nil {
		return writeError(c, s.logger, err, "Error removing from cart")
	}

	cmd, err := commands.NewRemoveCartItemCommand(identity.UserID, name)
	if err != nil {
		return writeError(c, s.logger, err, "Error removing from cart")
	}

	updated, err := s.handlers.RemoveCartItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err, "Error removing from cart")
	}

	return respond(c, http.StatusOK, "Removed from cart", cartView(updated))
}

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(c echo.Context) error {
	identity, _ := identityFrom(c)

	query, err := queries.NewGetCartQuery(identity.UserID)
	if err != nil {
		return writeError(c, s.logger, err, "Error fetching cart")
	}

	result, err := s.handlers.GetCart.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err, "Error fetching cart")
	}

	return respond(c, http.StatusOK, "Cart fetched", result)
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(c echo.Context) error {
	identity, _ := identityFrom(c)

	cmd, err := commands.NewClearCartCommand(identity.UserID)
	if err != nil {
		return writeError(c, s.logger, err, "Error clearing cart")
	}

	if err = s.handlers.ClearCart.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, s.logger, err, "Error clearing cart")
	}

	return respond(c, http.StatusOK, "Cart cleared", nil)
}
