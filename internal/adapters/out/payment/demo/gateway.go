// Package demo provides the payment gateway used when no gateway credentials
// are configured. It performs no I/O: checkout links point at the frontend's
// demo page and every verification succeeds.
package demo

import (
	"context"
	"fmt"
	"strings"

	"fooddelivery/internal/core/ports"
)

type Gateway struct {
	frontendURL string
}

var _ ports.PaymentGateway = (*Gateway)(nil)

func NewGateway(frontendURL string) *Gateway {
	return &Gateway{frontendURL: strings.TrimRight(frontendURL, "/")}
}

func (g *Gateway) Initiate(_ context.Context, request ports.PaymentRequest) (ports.PaymentInitiation, error) {
	return ports.PaymentInitiation{
		Status: ports.PaymentStatusSuccess,
		Link:   fmt.Sprintf("%s/demo-payment?orderid=%s", g.frontendURL, request.OrderID),
	}, nil
}

func (g *Gateway) Verify(_ context.Context, _ string) (ports.PaymentVerification, error) {
	return ports.PaymentVerification{
		Status:            ports.PaymentStatusSuccess,
		TransactionStatus: ports.TransactionStatusSuccess,
	}, nil
}
