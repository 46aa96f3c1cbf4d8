package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrVerifyOrderCommandIsNotConstructed = errors.New(
	"VerifyOrderCommand must be created via NewVerifyOrderCommand constructor",
)

// VerifyOrderCommand carries the outcome reported by the payment redirect.
//
// success is the flag the payment collaborator appended to the redirect URL;
// transactionRef is its transaction id and may be empty when success is false.
type VerifyOrderCommand struct {
	orderID        kernel.UUID
	success        bool
	transactionRef string

	guard guard.ConstructorGuard
}

func NewVerifyOrderCommand(orderID kernel.UUID, success bool, transactionRef string) (VerifyOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return VerifyOrderCommand{}, err
	}

	return VerifyOrderCommand{
		orderID:        orderID,
		success:        success,
		transactionRef: strings.TrimSpace(transactionRef),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c VerifyOrderCommand) Validate() error {
	return c.guard.Validate(ErrVerifyOrderCommandIsNotConstructed)
}

func (c VerifyOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c VerifyOrderCommand) Success() bool {
	return c.success
}

func (c VerifyOrderCommand) TransactionRef() string {
	return c.transactionRef
}
