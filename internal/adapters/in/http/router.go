package http

import (
	"log/slog"
	"net/http"

	"fooddelivery/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const APIPrefix = "/api/v1"

type RouterConfig struct {
	JWTSecret      string
	AllowedOrigins []string
}

// NewEcho builds the echo instance with middleware and every route mounted.
func NewEcho(server *Server, cfg RouterConfig, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = httpErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(logger)))
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))
	} else {
		e.Use(middleware.CORS())
	}

	e.GET("/health", func(c echo.Context) error {
		return respond(c, http.StatusOK, "Healthy", nil)
	})

	api := e.Group(APIPrefix)

	// Gateway redirect target: identified by the order, not by a session.
	api.POST("/orders/verify", server.VerifyOrder)

	authed := api.Group("", Authenticate(cfg.JWTSecret))
	admin := RequireRoles(user.RoleAdmin)
	courier := RequireRoles(user.RoleCourier, user.RoleAdmin)

	authed.POST("/cart/items", server.AddToCart)
	authed.DELETE("/cart/items/:itemName", server.RemoveFromCart)
	authed.GET("/cart", server.GetCart)
	authed.DELETE("/cart", server.ClearCart)

	authed.POST("/orders", server.PlaceOrder)
	authed.GET("/orders", server.ListOrders, admin)
	authed.GET("/orders/mine", server.GetUserOrders)
	authed.GET("/orders/available", server.GetAvailableOrders, courier)
	authed.POST("/orders/:orderId/commit", server.CommitOrder, courier)
	authed.PUT("/orders/:orderId/status", server.UpdateStatus, courier)
	authed.GET("/orders/:orderId/courier", server.GetOrderCourier)
	authed.GET("/orders/:orderId/delivery", server.GetOrderDeliveryDetails)

	authed.PUT("/users/:userId/roles", server.UpdateUserRoles, admin)
	authed.PUT("/users/:userId/courier-status", server.SetCourierStatus)

	authed.POST("/restaurants", server.AddRestaurant, admin)

	return e
}

func requestLoggerConfig(logger *slog.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				logger.LogAttrs(c.Request().Context(), slog.LevelError, "request", attrs...)
				return nil
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	}
}
