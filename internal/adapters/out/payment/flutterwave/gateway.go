// Package flutterwave talks to the Flutterwave v3 REST API to open hosted
// checkouts and verify the resulting transactions.
package flutterwave

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://api.flutterwave.com"
	DefaultTimeout = 15 * time.Second

	paymentsPath = "/v3/payments"
	verifyPath   = "/v3/transactions/{id}/verify"
)

type Config struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// Gateway implements ports.PaymentGateway. Every call is bounded by the
// configured timeout.
type Gateway struct {
	client *resty.Client
}

var _ ports.PaymentGateway = (*Gateway)(nil)

func NewGateway(cfg Config) *Gateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.SecretKey).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Gateway{client: client}
}

type customer struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phonenumber,omitempty"`
}

type paymentRequest struct {
	TxRef       string            `json:"tx_ref"`
	Amount      json.Number       `json:"amount"`
	Currency    string            `json:"currency"`
	RedirectURL string            `json:"redirect_url"`
	Customer    customer          `json:"customer"`
	Meta        map[string]string `json:"meta,omitempty"`
}

type paymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Link string `json:"link"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string          `json:"status"`
		TxRef    string          `json:"tx_ref"`
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	} `json:"data"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Initiate opens a hosted checkout and returns its link.
func (g *Gateway) Initiate(ctx context.Context, request ports.PaymentRequest) (ports.PaymentInitiation, error) {
	if request.Reference == "" {
		return ports.PaymentInitiation{}, errs.NewValueIsRequiredError("reference")
	}

	var (
		result  paymentResponse
		failure errorResponse
	)
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(paymentRequest{
			TxRef:       request.Reference,
			Amount:      json.Number(request.Amount.String()),
			Currency:    request.Currency,
			RedirectURL: request.RedirectURL,
			Customer: customer{
				Email:       request.Customer.Email,
				Name:        request.Customer.Name,
				PhoneNumber: request.Customer.PhoneNumber,
			},
			Meta: map[string]string{"order_id": request.OrderID.String()},
		}).
		SetResult(&result).
		SetError(&failure).
		Post(paymentsPath)
	if err != nil {
		return ports.PaymentInitiation{}, fmt.Errorf("initiate payment: %w", err)
	}
	if resp.IsError() {
		return ports.PaymentInitiation{}, statusError("initiate payment", resp, failure)
	}
	if result.Status != ports.PaymentStatusSuccess || result.Data.Link == "" {
		return ports.PaymentInitiation{}, fmt.Errorf("initiate payment: status %q: %s", result.Status, result.Message)
	}

	return ports.PaymentInitiation{
		Status: result.Status,
		Link:   result.Data.Link,
	}, nil
}

// Verify fetches the transaction the gateway redirected back with.
func (g *Gateway) Verify(ctx context.Context, transactionRef string) (ports.PaymentVerification, error) {
	transactionRef = strings.TrimSpace(transactionRef)
	if transactionRef == "" {
		return ports.PaymentVerification{}, errs.NewValueIsRequiredError("transactionRef")
	}

	var (
		result  verifyResponse
		failure errorResponse
	)
	resp, err := g.client.R().
		SetContext(ctx).
		SetPathParam("id", transactionRef).
		SetResult(&result).
		SetError(&failure).
		Get(verifyPath)
	if err != nil {
		return ports.PaymentVerification{}, fmt.Errorf("verify payment: %w", err)
	}
	if resp.IsError() {
		return ports.PaymentVerification{}, statusError("verify payment", resp, failure)
	}

	return ports.PaymentVerification{
		Status:            result.Status,
		TransactionStatus: result.Data.Status,
		Reference:         result.Data.TxRef,
		Amount:            result.Data.Amount,
		Currency:          result.Data.Currency,
	}, nil
}

func statusError(op string, resp *resty.Response, failure errorResponse) error {
	message := failure.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("%s: http %d: %s", op, resp.StatusCode(), message)
}
