package queries_test

import (
	"context"
	"time"

	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/cartrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/restaurantrepo"
	"fooddelivery/internal/adapters/out/postgres/userrepo"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// querySuite gives every handler suite a fresh in-memory database and
// seeding helpers built on the real repositories.
type querySuite struct {
	suite.Suite
	db *gorm.DB
}

func (suite *querySuite) SetupTest() {
	db, err := postgres.OpenSQLite(":memory:", nil)
	suite.Require().NoError(err)
	suite.Require().NoError(postgres.Migrate(db))
	suite.db = db
}

func (suite *querySuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())
}

func (suite *querySuite) addUser(firstName string, roles ...user.Role) *user.User {
	if len(roles) == 0 {
		roles = []user.Role{user.RoleUser}
	}
	u, err := user.NewUser(kernel.NewUUID(), user.Profile{
		FirstName:    firstName,
		LastName:     "Okafor",
		Email:        firstName + "." + kernel.NewUUID().String() + "@example.com",
		PhoneNumber:  "+234" + firstName,
		MatricNumber: "MAT/" + firstName,
	}, roles)
	suite.Require().NoError(err)
	suite.Require().NoError(userrepo.NewGormUserRepository(suite.db, noopTracker{}).Add(context.Background(), u))
	return u
}

func (suite *querySuite) addRestaurant(name, address string) *restaurant.Restaurant {
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), name, address)
	suite.Require().NoError(err)
	suite.Require().NoError(restaurantrepo.NewGormRestaurantRepository(suite.db, noopTracker{}).Add(context.Background(), r))
	return r
}

func (suite *querySuite) addCart(c *cart.Cart) {
	suite.Require().NoError(cartrepo.NewGormCartRepository(suite.db, noopTracker{}).Add(context.Background(), c))
}

type orderSeed struct {
	userID       kernel.UUID
	restaurantID *kernel.UUID
	status       order.Status
	courierID    *kernel.UUID
	createdAt    time.Time
	subtotal     string
}

func (suite *querySuite) addOrder(seed orderSeed) *order.Order {
	if seed.status == order.Unknown {
		seed.status = order.Pending
	}
	if seed.createdAt.IsZero() {
		seed.createdAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}
	if seed.subtotal == "" {
		seed.subtotal = "20"
	}
	subtotal := decimal.RequireFromString(seed.subtotal)
	serviceFee := subtotal.Mul(decimal.RequireFromString("0.15"))
	deliveryFee := decimal.NewFromInt(2)

	o, err := order.RestoreOrder(order.Snapshot{
		ID:           kernel.NewUUID(),
		UserID:       seed.userID,
		CartID:       kernel.NewUUID(),
		RestaurantID: seed.restaurantID,
		Address:      order.Address{"street": "1 Main St", "hostel": "Block C"},
		Subtotal:     subtotal,
		ServiceFee:   serviceFee,
		DeliveryFee:  deliveryFee,
		TotalAmount:  subtotal.Add(serviceFee).Add(deliveryFee),
		Status:       seed.status,
		CourierID:    seed.courierID,
		CreatedAt:    seed.createdAt,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.db, noopTracker{}).Add(context.Background(), o))
	return o
}

func orderIDs(views []queries.OrderView) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(views))
	for _, view := range views {
		out = append(out, view.ID)
	}
	return out
}
