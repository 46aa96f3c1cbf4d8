package cartrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/cartrepo"
	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
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

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type CartRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *cartrepo.GormCartRepository
	tracker    *MockAggregateTracker
}

func (suite *CartRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&cartrepo.CartDTO{}))
}

func (suite *CartRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE carts").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = cartrepo.NewGormCartRepository(suite.db, suite.tracker)
}

func (suite *CartRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CartRepositoryIntegrationTestSuite) TestAddAndGetByUser_RoundTripsItems() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	c, err := cart.NewCart(kernel.NewUUID(), userID)
	suite.Require().NoError(err)
	suite.Require().NoError(c.AddItem("Burger", decimal.RequireFromString("5"), 3, "no onions"))
	suite.Require().NoError(c.AddItem("Fries", decimal.RequireFromString("2.50"), 1, ""))
	suite.Require().NoError(c.OrderFrom(restaurantID))

	suite.Require().NoError(suite.repository.Add(ctx, c))

	got, err := suite.repository.GetByUser(ctx, userID)
	suite.Require().NoError(err)
	suite.Equal(c.ID(), got.ID())
	suite.Require().Len(got.Items(), 2)
	suite.Equal("Burger", got.Items()[0].Name())
	suite.Equal(3, got.Items()[0].Quantity())
	suite.Equal("no onions", got.Items()[0].Note())
	suite.Equal("Fries", got.Items()[1].Name())
	suite.True(decimal.RequireFromString("17.5").Equal(got.TotalPrice()))
	suite.Require().NotNil(got.RestaurantID())
	suite.Equal(restaurantID, *got.RestaurantID())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", c.ID(), c)
}

func (suite *CartRepositoryIntegrationTestSuite) TestAdd_SecondCartForUser_Conflicts() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	first, _ := cart.NewCart(kernel.NewUUID(), userID)
	second, _ := cart.NewCart(kernel.NewUUID(), userID)

	suite.Require().NoError(suite.repository.Add(ctx, first))
	err := suite.repository.Add(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *CartRepositoryIntegrationTestSuite) TestUpdate_ClearedCartKeepsRow() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	c, _ := cart.NewCart(kernel.NewUUID(), userID)
	suite.Require().NoError(c.AddItem("Burger", decimal.RequireFromString("5"), 2, ""))
	suite.Require().NoError(c.OrderFrom(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Add(ctx, c))

	c.Clear()
	suite.Require().NoError(suite.repository.Update(ctx, c))

	got, err := suite.repository.GetByUser(ctx, userID)
	suite.Require().NoError(err)
	suite.True(got.IsEmpty())
	suite.True(got.TotalPrice().IsZero())
	suite.Nil(got.RestaurantID())
}

func (suite *CartRepositoryIntegrationTestSuite) TestUpdate_NonExistentCart_ReturnsError() {
	c, _ := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())

	err := suite.repository.Update(context.Background(), c)

	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *CartRepositoryIntegrationTestSuite) TestGetByUser_NoCart_ReturnsNotFound() {
	got, err := suite.repository.GetByUser(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CartRepositoryIntegrationTestSuite) TestGetByUser_ConcurrentAddsInTransactions_KeepEveryQuantity() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	c, _ := cart.NewCart(kernel.NewUUID(), userID)
	suite.Require().NoError(c.AddItem("Burger", decimal.RequireFromString("5"), 2, ""))
	suite.Require().NoError(suite.repository.Add(ctx, c))

	const writers = 8
	var wg sync.WaitGroup
	errCh := make(chan error, writers)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- suite.db.Transaction(func(tx *gorm.DB) error {
				repo := cartrepo.NewGormCartRepository(tx, suite.tracker)
				current, err := repo.GetByUser(ctx, userID)
				if err != nil {
					return err
				}
				if err = current.AddItem("Burger", decimal.RequireFromString("5"), 1, ""); err != nil {
					return err
				}
				return repo.Update(ctx, current)
			})
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		suite.Require().NoError(err)
	}

	got, err := suite.repository.GetByUser(ctx, userID)
	suite.Require().NoError(err)
	suite.Require().Len(got.Items(), 1)
	suite.Equal(2+writers, got.Items()[0].Quantity())
	suite.True(decimal.NewFromInt(5 * (2 + writers)).Equal(got.TotalPrice()))
}

func TestCartRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepositoryIntegrationTestSuite))
}
