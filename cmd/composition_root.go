package cmd

import (
	"log/slog"

	"fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/payment/demo"
	"fooddelivery/internal/adapters/out/payment/flutterwave"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/rabbitmq"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/ports"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	gateway    ports.PaymentGateway
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	gateway ports.PaymentGateway,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		gateway:    gateway,
		logger:     logger,
	}
}

// NewPaymentGateway talks to Flutterwave when a secret key is configured and
// falls back to the demo gateway otherwise.
func NewPaymentGateway(config Config, logger *slog.Logger) ports.PaymentGateway {
	if config.FlutterwaveSecretKey == "" {
		logger.Warn("FLW_SECRET_KEY is not set, using the demo payment gateway")
		return demo.NewGateway(config.FrontendURL)
	}
	return flutterwave.NewGateway(flutterwave.Config{
		BaseURL:   config.FlutterwaveBaseURL,
		SecretKey: config.FlutterwaveSecretKey,
		Timeout:   config.PaymentTimeout,
	})
}

// NewEventPublisher returns the publisher and a function releasing it.
func NewEventPublisher(config Config, logger *slog.Logger) (ports.EventPublisher, func() error, error) {
	if config.RabbitMQURL == "" {
		logger.Info("RABBITMQ_URL is not set, order events are dropped")
		return rabbitmq.NewNoopPublisher(), func() error { return nil }, nil
	}
	publisher, err := rabbitmq.NewPublisher(rabbitmq.Config{
		URL:      config.RabbitMQURL,
		Exchange: config.RabbitMQExchange,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return publisher, publisher.Close, nil
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) restaurantUoWFactory() commands.RestaurantUoWFactory {
	return FuncRestaurantUoWFactory(func() commands.RestaurantUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	settings := commands.CheckoutSettings{
		FrontendURL: c.config.FrontendURL,
		Currency:    c.config.PaymentCurrency,
	}
	return commands.NewPlaceOrderCommandHandler(c.fullUoWFactory(), c.gateway, settings, c.logger)
}

func (c *CompositionRoot) CreateVerifyOrderCommandHandler() commands.VerifyOrderCommandHandler {
	return commands.NewVerifyOrderCommandHandler(c.orderUoWFactory(), c.gateway, c.logger)
}

func (c *CompositionRoot) CreateCommitOrderCommandHandler() commands.CommitOrderCommandHandler {
	return commands.NewCommitOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateUserRolesCommandHandler() commands.UpdateUserRolesCommandHandler {
	return commands.NewUpdateUserRolesCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateSetCourierStatusCommandHandler() commands.SetCourierStatusCommandHandler {
	return commands.NewSetCourierStatusCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateAddRestaurantCommandHandler() commands.AddRestaurantCommandHandler {
	return commands.NewAddRestaurantCommandHandler(c.restaurantUoWFactory())
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderCourierQueryHandler() queries.GetOrderCourierQueryHandler {
	return queries.NewGetOrderCourierQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderDeliveryDetailsQueryHandler() queries.GetOrderDeliveryDetailsQueryHandler {
	return queries.NewGetOrderDeliveryDetailsQueryHandler(c.gormDB)
}

// Handlers collects every use case for the HTTP server.
func (c *CompositionRoot) Handlers() http.Handlers {
	return http.Handlers{
		AddCartItem:       c.CreateAddCartItemCommandHandler(),
		RemoveCartItem:    c.CreateRemoveCartItemCommandHandler(),
		ClearCart:         c.CreateClearCartCommandHandler(),
		PlaceOrder:        c.CreatePlaceOrderCommandHandler(),
		VerifyOrder:       c.CreateVerifyOrderCommandHandler(),
		CommitOrder:       c.CreateCommitOrderCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		UpdateUserRoles:   c.CreateUpdateUserRolesCommandHandler(),
		SetCourierStatus:  c.CreateSetCourierStatusCommandHandler(),
		AddRestaurant:     c.CreateAddRestaurantCommandHandler(),

		GetCart:                 c.CreateGetCartQueryHandler(),
		ListOrders:              c.CreateListOrdersQueryHandler(),
		GetUserOrders:           c.CreateGetUserOrdersQueryHandler(),
		GetAvailableOrders:      c.CreateGetAvailableOrdersQueryHandler(),
		GetOrderCourier:         c.CreateGetOrderCourierQueryHandler(),
		GetOrderDeliveryDetails: c.CreateGetOrderDeliveryDetailsQueryHandler(),
	}
}

// NewEcho mounts the API on a fresh echo instance.
func (c *CompositionRoot) NewEcho() *echo.Echo {
	server := http.NewServer(c.Handlers(), c.logger)
	return http.NewEcho(server, http.RouterConfig{
		JWTSecret:      c.config.JWTSecret,
		AllowedOrigins: c.config.AllowedOrigins,
	}, c.logger)
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncRestaurantUoWFactory func() commands.RestaurantUoW

func (f FuncRestaurantUoWFactory) Create() commands.RestaurantUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
