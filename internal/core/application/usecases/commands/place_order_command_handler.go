package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrCartIsEmpty = errs.NewValueIsInvalidErrorWithCause("cart", errors.New("cart has no items"))

// CheckoutSettings carries the deployment values checkout needs to build a payment request.
type CheckoutSettings struct {
	// FrontendURL is where the payment collaborator redirects the customer.
	FrontendURL string
	Currency    string
}

// PlaceOrderResult describes a placed order and where the customer pays for it.
type PlaceOrderResult struct {
	OrderID     kernel.UUID
	Subtotal    decimal.Decimal
	ServiceFee  decimal.Decimal
	DeliveryFee decimal.Decimal
	TotalAmount decimal.Decimal
	PaymentLink string
}

// PlaceOrderCommandHandler turns the caller's cart into a Pending, unpaid order
// and asks the payment gateway for a checkout link.
//
// The order is created and the cart emptied in one transaction. Payment
// initiation happens after commit: when it fails the order stays persisted and
// the returned error wraps errs.ErrExternalService.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
	settings   CheckoutSettings
	logger     *slog.Logger
}

func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	gateway ports.PaymentGateway,
	settings CheckoutSettings,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		settings:   settings,
		logger:     logger.With("component", "place-order"),
	}
}

func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	o, customer, err := h.checkout(ctx, cmd)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	result := PlaceOrderResult{
		OrderID:     o.ID(),
		Subtotal:    o.Subtotal(),
		ServiceFee:  o.ServiceFee(),
		DeliveryFee: o.DeliveryFee(),
		TotalAmount: o.TotalAmount(),
	}

	initiation, err := h.gateway.Initiate(ctx, ports.PaymentRequest{
		OrderID:     o.ID(),
		Reference:   o.PaymentReference(),
		Amount:      o.TotalAmount(),
		Currency:    h.settings.Currency,
		RedirectURL: h.redirectURL(o.ID()),
		Customer:    customer,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "payment initiation failed",
			"order_id", o.ID().String(),
			"error", err,
		)
		return result, errs.NewExternalServiceError("payment gateway", err)
	}

	result.PaymentLink = initiation.Link
	return result, nil
}

func (h PlaceOrderCommandHandler) checkout(
	ctx context.Context,
	cmd PlaceOrderCommand,
) (*order.Order, ports.PaymentCustomer, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, ports.PaymentCustomer{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	c, isNew, err := h.cartFor(ctx, cartRepo, cmd)
	if err != nil {
		return nil, ports.PaymentCustomer{}, err
	}

	u, err := uow.UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return nil, ports.PaymentCustomer{}, err
	}

	subtotal, ok := cmd.Subtotal()
	if !ok {
		if c.IsEmpty() {
			return nil, ports.PaymentCustomer{}, ErrCartIsEmpty
		}
		subtotal = c.TotalPrice()
	}

	deliveryFee, ok := cmd.DeliveryFee()
	if !ok {
		deliveryFee = services.DefaultDeliveryFee
	}

	o, err := order.NewOrder(kernel.NewUUID(), cmd.UserID(), c.ID(), c.RestaurantID(),
		cmd.Address(), subtotal, deliveryFee)
	if err != nil {
		return nil, ports.PaymentCustomer{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, ports.PaymentCustomer{}, err
	}

	c.Clear()
	if isNew {
		err = cartRepo.Add(ctx, c)
	} else {
		err = cartRepo.Update(ctx, c)
	}
	if err != nil {
		return nil, ports.PaymentCustomer{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, ports.PaymentCustomer{}, err
	}

	profile := u.Profile()
	return o, ports.PaymentCustomer{
		Email:       profile.Email,
		Name:        u.FullName(),
		PhoneNumber: profile.PhoneNumber,
	}, nil
}

// cartFor loads the caller's cart. A caller without one may still check out
// with an explicit subtotal; the order then references a fresh empty cart
// that is stored alongside it.
func (h PlaceOrderCommandHandler) cartFor(
	ctx context.Context,
	cartRepo ports.CartRepository,
	cmd PlaceOrderCommand,
) (*cart.Cart, bool, error) {
	c, err := cartRepo.GetByUser(ctx, cmd.UserID())
	if err == nil {
		return c, false, nil
	}
	if _, explicit := cmd.Subtotal(); !explicit || !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	c, err = cart.NewCart(kernel.NewUUID(), cmd.UserID())
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

func (h PlaceOrderCommandHandler) redirectURL(orderID kernel.UUID) string {
	return fmt.Sprintf("%s/verify?success=true&orderid=%s",
		strings.TrimRight(h.settings.FrontendURL, "/"), orderID.String())
}
