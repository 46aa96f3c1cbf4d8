package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

type UpdateUserRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,required"`
}

type SetCourierStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type UserResponse struct {
	ID            kernel.UUID `json:"id"`
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Email         string      `json:"email"`
	Roles         []string    `json:"roles"`
	CourierActive bool        `json:"courierActive"`
}

func userView(u *user.User) UserResponse {
	roles := make([]string, 0, len(u.Roles()))
	for _, role := range u.Roles() {
		roles = append(roles, role.String())
	}
	profile := u.Profile()
	return UserResponse{
		ID:            u.ID(),
		FirstName:     profile.FirstName,
		LastName:      profile.LastName,
		Email:         profile.Email,
		Roles:         roles,
		CourierActive: u.IsCourierActive(),
	}
}

// UpdateUserRoles handles PUT /api/v1/users/:userId/roles.
func (s *Server) UpdateUserRoles(c echo.Context) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return writeError(c, s.logger, err, "Error updating roles")
	}

	var req UpdateUserRolesRequest
	if err = bindAndValidate(c, &req); err != nil {
		return writeError(c, s.logger, err, "Error updating roles")
	}

	cmd, err := commands.NewUpdateUserRolesCommand(userID, req.Roles)
	if err != nil {
		return writeError(c, s.logger, err, "Error updating roles")
	}

	updated, err := s.handlers.UpdateUserRoles.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err, "Error updating roles")
	}

	return respond(c, http.StatusOK, "Roles updated", userView(updated))
}

// SetCourierStatus handles PUT /api/v1/users/:userId/courier-status. Admins
// may toggle any courier; couriers only themselves.
func (s *Server) SetCourierStatus(c echo.Context) error {
	identity, _ := identityFrom(c)

	userID, err := uuidParam(c, "userId")
	if err != nil {
		return writeError(c, s.logger, err, "Error updating courier status")
	}
	if !identity.IsSelf(userID) && !identity.HasRole(user.RoleAdmin) {
		return fail(c, http.StatusForbidden, "Access denied")
	}

	var req SetCourierStatusRequest
	if err = bindAndValidate(c, &req); err != nil {
		return writeError(c, s.logger, err, "Error updating courier status")
	}

	cmd, err := commands.NewSetCourierStatusCommand(userID, *req.Active)
	if err != nil {
		return writeError(c, s.logger, err, "Error updating courier status")
	}

	updated, err := s.handlers.SetCourierStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err, "Error updating courier status")
	}

	return respond(c, http.StatusOK, "Courier status updated", userView(updated))
}
