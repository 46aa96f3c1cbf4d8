package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type AddRestaurantRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type RestaurantResponse struct {
	ID      kernel.UUID `json:"id"`
	Name    string      `json:"name"`
	Address string      `json:"address"`
}

// AddRestaurant handles POST /api/v1/restaurants.
func (s *Server) AddRestaurant(c echo.Context) error {
	var req AddRestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, s.logger, err, "Error adding restaurant")
	}

	created, err := s.handlers.AddRestaurant.Handle(c.Request().Context(),
		commands.NewAddRestaurantCommand(req.Name, req.Address))
	if err != nil {
		return writeError(c, s.logger, err, "Error adding restaurant")
	}

	return respond(c, http.StatusCreated, "Restaurant added", RestaurantResponse{
		ID:      created.ID(),
		Name:    created.Name(),
		Address: created.Address(),
	})
}
