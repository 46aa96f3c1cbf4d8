package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"fooddelivery/cmd"
	api "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/payment/demo"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/userrepo"
	"fooddelivery/internal/adapters/out/rabbitmq"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const (
	testSecret   = "test-secret"
	testFrontend = "http://frontend.test"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type placedOrder struct {
	OrderID     kernel.UUID     `json:"orderId"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ServiceFee  decimal.Decimal `json:"serviceFee"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaymentURL  string          `json:"paymentUrl"`
}

type ServerTestSuite struct {
	suite.Suite
	db   *gorm.DB
	echo *echo.Echo
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (suite *ServerTestSuite) SetupTest() {
	db, err := postgres.OpenSQLite(":memory:", nil)
	suite.Require().NoError(err)
	suite.Require().NoError(postgres.Migrate(db))
	suite.db = db

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	config := cmd.Config{
		JWTSecret:       testSecret,
		FrontendURL:     testFrontend,
		PaymentCurrency: "NGN",
	}
	root := cmd.NewCompositionRoot(config, db, demo.NewGateway(testFrontend), rabbitmq.NewNoopPublisher(), logger)
	suite.echo = root.NewEcho()
}

func (suite *ServerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())
}

func (suite *ServerTestSuite) addUser(firstName string, roles ...user.Role) *user.User {
	if len(roles) == 0 {
		roles = []user.Role{user.RoleUser}
	}
	u, err := user.NewUser(kernel.NewUUID(), user.Profile{
		FirstName:   firstName,
		LastName:    "Bello",
		Email:       firstName + "." + kernel.NewUUID().String() + "@example.com",
		PhoneNumber: "+2348000000000",
	}, roles)
	suite.Require().NoError(err)
	suite.Require().NoError(userrepo.NewGormUserRepository(suite.db, noopTracker{}).Add(context.Background(), u))
	return u
}

func (suite *ServerTestSuite) addActiveCourier(firstName string) *user.User {
	u := suite.addUser(firstName, user.RoleCourier)
	suite.Require().NoError(u.SetCourierActive(true))
	suite.Require().NoError(userrepo.NewGormUserRepository(suite.db, noopTracker{}).Update(context.Background(), u))
	return u
}

func (suite *ServerTestSuite) token(u *user.User) string {
	token, err := api.NewToken(testSecret, u.ID(), u.Roles(), time.Hour)
	suite.Require().NoError(err)
	return token
}

func (suite *ServerTestSuite) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)

	var env envelope
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func (suite *ServerTestSuite) decode(env envelope, target any) {
	suite.Require().NoError(json.Unmarshal(env.Data, target))
}

func (suite *ServerTestSuite) placeOrder(customer *user.User) placedOrder {
	token := suite.token(customer)
	rec, _ := suite.do(http.MethodPost, "/api/v1/cart/items", token,
		map[string]any{"name": "Jollof Rice", "price": 25, "quantity": 2})
	suite.Require().Equal(http.StatusOK, rec.Code)

	rec, env := suite.do(http.MethodPost, "/api/v1/orders", token, map[string]any{
		"address":     map[string]any{"hostel": "Block C", "room": "12"},
		"amount":      50,
		"deliveryFee": 5,
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, env.Message)

	var placed placedOrder
	suite.decode(env, &placed)
	return placed
}

func (suite *ServerTestSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	suite.echo.ServeHTTP(rec, req)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "Healthy")
}

func (suite *ServerTestSuite) TestAuthentication() {
	customer := suite.addUser("Ada")

	rec, env := suite.do(http.MethodGet, "/api/v1/cart", "", nil)
	suite.Equal(http.StatusUnauthorized, rec.Code)
	suite.False(env.Success)
	suite.Equal("Not authorized, login again", env.Message)

	rec, env = suite.do(http.MethodGet, "/api/v1/cart", "not-a-jwt", nil)
	suite.Equal(http.StatusUnauthorized, rec.Code)
	suite.Equal("Invalid or expired token", env.Message)

	expired, err := api.NewToken(testSecret, customer.ID(), customer.Roles(), -time.Minute)
	suite.Require().NoError(err)
	rec, _ = suite.do(http.MethodGet, "/api/v1/cart", expired, nil)
	suite.Equal(http.StatusUnauthorized, rec.Code)

	forged, err := api.NewToken("another-secret", customer.ID(), customer.Roles(), time.Hour)
	suite.Require().NoError(err)
	rec, _ = suite.do(http.MethodGet, "/api/v1/cart", forged, nil)
	suite.Equal(http.StatusUnauthorized, rec.Code)
}

func (suite *ServerTestSuite) TestRoleChecks() {
	customer := suite.addUser("Ada")
	token := suite.token(customer)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/orders"},
		{http.MethodGet, "/api/v1/orders/available"},
		{http.MethodPost, "/api/v1/orders/" + kernel.NewUUID().String() + "/commit"},
		{http.MethodPost, "/api/v1/restaurants"},
	} {
		rec, env := suite.do(route.method, route.path, token, nil)

		suite.Equal(http.StatusForbidden, rec.Code, route.path)
		suite.Equal("Access denied", env.Message, route.path)
	}
}

func (suite *ServerTestSuite) TestAddToCart_MergesSameItem() {
	token := suite.token(suite.addUser("Ada"))

	rec, _ := suite.do(http.MethodPost, "/api/v1/cart/items", token,
		map[string]any{"name": "Burger", "price": 5, "quantity": 2})
	suite.Require().Equal(http.StatusOK, rec.Code)

	rec, env := suite.do(http.MethodPost, "/api/v1/cart/items", token,
		map[string]any{"name": "Burger", "price": 5, "quantity": 1})
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal("Added to cart", env.Message)

	var cart queries.GetCartQueryResponse
	suite.decode(env, &cart)
	suite.Require().Len(cart.Items, 1)
	suite.Equal("Burger", cart.Items[0].Name)
	suite.Equal(3, cart.Items[0].Quantity)
	suite.True(decimal.NewFromInt(15).Equal(cart.TotalPrice))

	rec, env = suite.do(http.MethodDelete, "/api/v1/cart/items/Burger", token, nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.decode(env, &cart)
	suite.Equal(2, cart.Items[0].Quantity)

	rec, _ = suite.do(http.MethodDelete, "/api/v1/cart", token, nil)
	suite.Require().Equal(http.StatusOK, rec.Code)

	rec, env = suite.do(http.MethodGet, "/api/v1/cart", token, nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.decode(env, &cart)
	suite.Empty(cart.Items)
	suite.True(cart.TotalPrice.IsZero())
}

func (suite *ServerTestSuite) TestAddToCart_RejectsMissingName() {
	token := suite.token(suite.addUser("Ada"))

	rec, env := suite.do(http.MethodPost, "/api/v1/cart/items", token, map[string]any{"price": 5})

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.False(env.Success)
}

func (suite *ServerTestSuite) TestPlaceOrder() {
	customer := suite.addUser("Ada")

	placed := suite.placeOrder(customer)

	suite.True(decimal.NewFromInt(50).Equal(placed.Subtotal))
	suite.True(decimal.RequireFromString("7.5").Equal(placed.ServiceFee))
	suite.True(decimal.NewFromInt(5).Equal(placed.DeliveryFee))
	suite.True(decimal.RequireFromString("62.5").Equal(placed.TotalAmount))
	suite.Equal(testFrontend+"/demo-payment?orderid="+placed.OrderID.String(), placed.PaymentURL)

	rec, env := suite.do(http.MethodGet, "/api/v1/orders/mine", suite.token(customer), nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var orders []queries.GetUserOrdersQueryResponse
	suite.decode(env, &orders)
	suite.Require().Len(orders, 1)
	suite.True(orders[0].ID.IsEqual(placed.OrderID))
	suite.False(orders[0].Payment)
	suite.Equal("Pending", orders[0].Status)

	rec, env = suite.do(http.MethodGet, "/api/v1/cart", suite.token(customer), nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var cart queries.GetCartQueryResponse
	suite.decode(env, &cart)
	suite.Empty(cart.Items)
}

func (suite *ServerTestSuite) TestPlaceOrder_SubtotalFieldWinsOverAmount() {
	token := suite.token(suite.addUser("Ada"))
	rec, _ := suite.do(http.MethodPost, "/api/v1/cart/items", token,
		map[string]any{"name": "Jollof Rice", "price": 25, "quantity": 2})
	suite.Require().Equal(http.StatusOK, rec.Code)

	rec, env := suite.do(http.MethodPost, "/api/v1/orders", token, map[string]any{
		"address":     map[string]any{"hostel": "Block C"},
		"subtotal":    40,
		"amount":      99,
		"deliveryFee": 0,
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, env.Message)

	var placed placedOrder
	suite.decode(env, &placed)
	suite.True(decimal.NewFromInt(40).Equal(placed.Subtotal))
	suite.True(decimal.NewFromInt(6).Equal(placed.ServiceFee))
	suite.True(decimal.NewFromInt(46).Equal(placed.TotalAmount))
}

func (suite *ServerTestSuite) TestVerifyOrder_NotPaidRemovesOrder() {
	customer := suite.addUser("Ada")
	placed := suite.placeOrder(customer)

	rec, env := suite.do(http.MethodPost, "/api/v1/orders/verify", "", map[string]any{
		"orderId": placed.OrderID.String(),
		"success": "false",
	})

	suite.Equal(http.StatusOK, rec.Code)
	suite.False(env.Success)
	suite.Equal("Not Paid", env.Message)

	rec, env = suite.do(http.MethodGet, "/api/v1/orders/mine", suite.token(customer), nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var orders []queries.GetUserOrdersQueryResponse
	suite.decode(env, &orders)
	suite.Empty(orders)
}

func (suite *ServerTestSuite) TestVerifyOrder_PaidOnce() {
	customer := suite.addUser("Ada")
	placed := suite.placeOrder(customer)
	body := map[string]any{"orderId": placed.OrderID.String(), "success": true, "transactionId": "1234"}

	rec, env := suite.do(http.MethodPost, "/api/v1/orders/verify", "", body)
	suite.Equal(http.StatusOK, rec.Code)
	suite.True(env.Success)
	suite.Equal("Paid", env.Message)

	rec, env = suite.do(http.MethodPost, "/api/v1/orders/verify", "", body)
	suite.Equal(http.StatusOK, rec.Code)
	suite.True(env.Success)
	suite.Equal("Already paid", env.Message)
}

func (suite *ServerTestSuite) TestVerifyOrder_UnknownOrder() {
	rec, env := suite.do(http.MethodPost, "/api/v1/orders/verify", "", map[string]any{
		"orderId": kernel.NewUUID().String(),
		"success": true,
	})

	suite.Equal(http.StatusNotFound, rec.Code)
	suite.False(env.Success)
}

func (suite *ServerTestSuite) TestCommitOrder_ConcurrentClaimsHaveOneWinner() {
	placed := suite.placeOrder(suite.addUser("Ada"))
	couriers := []*user.User{suite.addActiveCourier("Tunde"), suite.addActiveCourier("Kemi")}
	path := "/api/v1/orders/" + placed.OrderID.String() + "/commit"

	codes := make([]int, len(couriers))
	var wg sync.WaitGroup
	for i, courier := range couriers {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, path, nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
			rec := httptest.NewRecorder()
			suite.echo.ServeHTTP(rec, req)
			codes[i] = rec.Code
		}(i, suite.token(courier))
	}
	wg.Wait()

	suite.ElementsMatch([]int{http.StatusOK, http.StatusConflict}, codes)

	rec, env := suite.do(http.MethodGet, "/api/v1/orders/"+placed.OrderID.String()+"/courier",
		suite.token(couriers[0]), nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var courier queries.GetOrderCourierQueryResponse
	suite.decode(env, &courier)
	suite.Contains([]string{"Tunde", "Kemi"}, courier.FirstName)
}

func (suite *ServerTestSuite) TestCommitOrder_InactiveCourierIsRefused() {
	placed := suite.placeOrder(suite.addUser("Ada"))
	courier := suite.addUser("Tunde", user.RoleCourier)

	rec, env := suite.do(http.MethodPost, "/api/v1/orders/"+placed.OrderID.String()+"/commit",
		suite.token(courier), nil)

	suite.Equal(http.StatusForbidden, rec.Code)
	suite.False(env.Success)
}

func (suite *ServerTestSuite) TestCommitOrder_CourierCannotClaimForOthers() {
	placed := suite.placeOrder(suite.addUser("Ada"))
	courier := suite.addActiveCourier("Tunde")
	other := suite.addActiveCourier("Kemi")

	rec, _ := suite.do(http.MethodPost, "/api/v1/orders/"+placed.OrderID.String()+"/commit",
		suite.token(courier), map[string]any{"courierId": other.ID().String()})

	suite.Equal(http.StatusForbidden, rec.Code)
}

func (suite *ServerTestSuite) TestGetOrderCourier_Unassigned() {
	customer := suite.addUser("Ada")
	placed := suite.placeOrder(customer)

	rec, env := suite.do(http.MethodGet, "/api/v1/orders/"+placed.OrderID.String()+"/courier",
		suite.token(customer), nil)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("No courier assigned yet", env.Message)
	suite.Empty(env.Data)
}

func (suite *ServerTestSuite) TestUpdateStatus() {
	placed := suite.placeOrder(suite.addUser("Ada"))
	admin := suite.token(suite.addUser("Root", user.RoleAdmin))
	path := "/api/v1/orders/" + placed.OrderID.String() + "/status"

	rec, env := suite.do(http.MethodPut, path, admin, map[string]any{"status": "Shipped"})
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.False(env.Success)

	rec, env = suite.do(http.MethodPut, path, admin, map[string]any{"status": "Food Processing"})
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal("Status Updated", env.Message)
	var view queries.OrderView
	suite.decode(env, &view)
	suite.Equal("Food Processing", view.Status)
}

func (suite *ServerTestSuite) TestMalformedPathParameter() {
	admin := suite.token(suite.addUser("Root", user.RoleAdmin))

	rec, env := suite.do(http.MethodPut, "/api/v1/orders/not-a-uuid/status", admin,
		map[string]any{"status": "Delivered"})

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.False(env.Success)
}

func (suite *ServerTestSuite) TestListOrders_AdminOnly() {
	suite.placeOrder(suite.addUser("Ada"))
	suite.placeOrder(suite.addUser("Bola"))

	rec, env := suite.do(http.MethodGet, "/api/v1/orders", suite.token(suite.addUser("Root", user.RoleAdmin)), nil)

	suite.Require().Equal(http.StatusOK, rec.Code)
	var orders []queries.OrderView
	suite.decode(env, &orders)
	suite.Len(orders, 2)
}

func (suite *ServerTestSuite) TestSetCourierStatus() {
	courier := suite.addUser("Tunde", user.RoleCourier)
	stranger := suite.addUser("Ada")
	path := "/api/v1/users/" + courier.ID().String() + "/courier-status"

	rec, _ := suite.do(http.MethodPut, path, suite.token(stranger), map[string]any{"active": true})
	suite.Equal(http.StatusForbidden, rec.Code)

	rec, env := suite.do(http.MethodPut, path, suite.token(courier), map[string]any{"active": true})
	suite.Require().Equal(http.StatusOK, rec.Code)
	var view api.UserResponse
	suite.decode(env, &view)
	suite.True(view.CourierActive)
}

func (suite *ServerTestSuite) TestUpdateUserRoles() {
	target := suite.addUser("Ada")
	admin := suite.token(suite.addUser("Root", user.RoleAdmin))
	path := "/api/v1/users/" + target.ID().String() + "/roles"

	rec, env := suite.do(http.MethodPut, path, admin, map[string]any{"roles": []string{"user", "courier"}})
	suite.Require().Equal(http.StatusOK, rec.Code)
	var view api.UserResponse
	suite.decode(env, &view)
	suite.ElementsMatch([]string{"user", "courier"}, view.Roles)

	rec, _ = suite.do(http.MethodPut, path, admin, map[string]any{"roles": []string{"superuser"}})
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestAddRestaurant() {
	admin := suite.token(suite.addUser("Root", user.RoleAdmin))

	rec, env := suite.do(http.MethodPost, "/api/v1/restaurants", admin,
		map[string]any{"name": "Mama Put", "address": "Gate 2"})

	suite.Require().Equal(http.StatusCreated, rec.Code)
	var view api.RestaurantResponse
	suite.decode(env, &view)
	suite.Equal("Mama Put", view.Name)
	suite.NoError(view.ID.Validate())
}
