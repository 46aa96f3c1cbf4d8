package commands

import (
	"context"
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// VerifyOrderResult reports the payment state after verification.
type VerifyOrderResult struct {
	Paid bool
	// AlreadyPaid is set when the order was confirmed by an earlier call.
	AlreadyPaid bool
}

// VerifyOrderCommandHandler settles an order after the payment redirect.
//
// Business rules:
//   - a failed redirect deletes the order and reports it as not paid
//   - an order that is already paid is left untouched
//   - otherwise the gateway must confirm the transaction; an unconfirmed or
//     mismatching transaction yields errs.ErrExternalService and keeps the order
//
// The gateway is queried outside the transaction so no database connection
// is held during remote I/O.
type VerifyOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
	logger     *slog.Logger
}

func NewVerifyOrderCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	logger *slog.Logger,
) VerifyOrderCommandHandler {
	return VerifyOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		logger:     logger.With("component", "verify-order"),
	}
}

func (h VerifyOrderCommandHandler) Handle(ctx context.Context, cmd VerifyOrderCommand) (VerifyOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return VerifyOrderResult{}, err
	}

	if !cmd.Success() {
		return VerifyOrderResult{}, h.reject(ctx, cmd.OrderID())
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return VerifyOrderResult{}, err
	}
	if o.IsPaid() {
		return VerifyOrderResult{Paid: true, AlreadyPaid: true}, nil
	}

	verification, err := h.gateway.Verify(ctx, cmd.TransactionRef())
	if err != nil {
		h.logger.ErrorContext(ctx, "payment verification failed",
			"order_id", o.ID().String(),
			"error", err,
		)
		return VerifyOrderResult{}, errs.NewExternalServiceError("payment gateway", err)
	}

	if !verification.IsSuccessful() {
		return VerifyOrderResult{}, errs.NewExternalServiceError("payment gateway",
			fmt.Errorf("payment not confirmed: status %q, transaction status %q",
				verification.Status, verification.TransactionStatus))
	}

	if verification.Reference != "" && verification.Reference != o.PaymentReference() {
		return VerifyOrderResult{}, errs.NewExternalServiceError("payment gateway",
			fmt.Errorf("transaction reference %q does not belong to order %s",
				verification.Reference, o.ID().String()))
	}

	return h.markPaid(ctx, cmd.OrderID())
}

func (h VerifyOrderCommandHandler) reject(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	o.Reject()

	if err = orderRepo.Delete(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h VerifyOrderCommandHandler) markPaid(ctx context.Context, orderID kernel.UUID) (VerifyOrderResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return VerifyOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return VerifyOrderResult{}, err
	}

	if !o.MarkPaid() {
		return VerifyOrderResult{Paid: true, AlreadyPaid: true}, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return VerifyOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return VerifyOrderResult{}, err
	}

	return VerifyOrderResult{Paid: true}, nil
}
