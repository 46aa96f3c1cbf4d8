package orderrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite runs the order repository against a real
// PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsEveryField() {
	ctx := context.Background()
	restaurantID := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), &restaurantID,
		order.Address{"hostel": "Block C", "room": float64(12)},
		decimal.RequireFromString("50"), decimal.RequireFromString("5"))
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.ID(), got.ID())
	suite.Equal(o.UserID(), got.UserID())
	suite.Equal(o.CartID(), got.CartID())
	suite.Require().NotNil(got.RestaurantID())
	suite.Equal(restaurantID, *got.RestaurantID())
	suite.Equal(order.Address{"hostel": "Block C", "room": float64(12)}, got.Address())
	suite.True(decimal.RequireFromString("50").Equal(got.Subtotal()))
	suite.True(decimal.RequireFromString("7.5").Equal(got.ServiceFee()))
	suite.True(decimal.RequireFromString("5").Equal(got.DeliveryFee()))
	suite.True(decimal.RequireFromString("62.5").Equal(got.TotalAmount()))
	suite.False(got.IsPaid())
	suite.Equal(order.Pending, got.Status())
	suite.Nil(got.Courier())
	suite.WithinDuration(o.CreatedAt(), got.CreatedAt(), time.Millisecond)
	suite.Empty(got.DomainEvents())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsPaymentAndStatus() {
	ctx := context.Background()
	o := suite.addOrder(ctx)

	o.MarkPaid()
	suite.Require().NoError(o.ChangeStatus(order.FoodProcessing))
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(got.IsPaid())
	suite.Equal(order.FoodProcessing, got.Status())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	o := newOrder(suite.T())

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_SetsCourierOnce() {
	ctx := context.Background()
	o := suite.addOrder(ctx)
	stale, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	courierID := kernel.NewUUID()
	suite.Require().NoError(o.Commit(courierID))
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Claim(ctx, o))

	suite.Require().NoError(stale.Commit(kernel.NewUUID()), "stale copy still looks unclaimed")
	err = suite.repository.Claim(ctx, stale)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(courierID, *got.Courier())
	suite.Equal(order.OutForDelivery, got.Status())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_ConcurrentClaimsHaveOneWinner() {
	ctx := context.Background()
	o := suite.addOrder(ctx)
	suite.tracker.On("TrackAggregate", o.ID(), mock.Anything).Maybe()

	const contenders = 10
	results := make(chan error, contenders)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for range contenders {
		copyOfOrder, err := suite.repository.Get(ctx, o.ID())
		suite.Require().NoError(err)
		suite.Require().NoError(copyOfOrder.Commit(kernel.NewUUID()))

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results <- suite.repository.Claim(ctx, copyOfOrder)
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, errs.ErrConflict):
			conflicts++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}

	suite.Equal(1, wins)
	suite.Equal(contenders-1, conflicts)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_MissingOrder_ReturnsNotFound() {
	o := newOrder(suite.T())
	suite.Require().NoError(o.Commit(kernel.NewUUID()))

	err := suite.repository.Claim(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_RemovesRow() {
	ctx := context.Background()
	o := suite.addOrder(ctx)

	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Delete(ctx, o))

	_, err := suite.repository.Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repository.Delete(ctx, o)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) addOrder(ctx context.Context) *order.Order {
	o := newOrder(suite.T())
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Add(ctx, o))
	return o
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
		order.Address{"hostel": "Block C"}, decimal.NewFromInt(20), decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("build order: %v", err)
	}
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
