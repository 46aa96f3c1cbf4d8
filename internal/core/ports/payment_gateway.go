package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	PaymentStatusSuccess     = "success"
	TransactionStatusSuccess = "successful"
)

type PaymentCustomer struct {
	Email       string
	Name        string
	PhoneNumber string
}

// PaymentRequest asks the gateway to open a checkout for one order.
type PaymentRequest struct {
	OrderID     kernel.UUID
	Reference   string
	Amount      decimal.Decimal
	Currency    string
	RedirectURL string
	Customer    PaymentCustomer
}

type PaymentInitiation struct {
	Status string
	Link   string
}

type PaymentVerification struct {
	Status            string
	TransactionStatus string
	Reference         string
	Amount            decimal.Decimal
	Currency          string
}

// IsSuccessful reports whether both the call and the transaction succeeded.
func (v PaymentVerification) IsSuccessful() bool {
	return v.Status == PaymentStatusSuccess && v.TransactionStatus == TransactionStatusSuccess
}

// PaymentGateway is the external payment collaborator. Implementations bound
// every call with a timeout.
type PaymentGateway interface {
	Initiate(ctx context.Context, request PaymentRequest) (PaymentInitiation, error)

	Verify(ctx context.Context, transactionRef string) (PaymentVerification, error)
}
