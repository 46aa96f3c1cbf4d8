package services

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var (
	// ServiceFeeRate is the flat share of the subtotal charged as service fee.
	ServiceFeeRate = decimal.RequireFromString("0.15")

	// DefaultDeliveryFee applies when checkout does not name a delivery fee.
	DefaultDeliveryFee = decimal.NewFromInt(2)
)

// Totals is the monetary breakdown derived from a subtotal and a delivery fee.
type Totals struct {
	ServiceFee  decimal.Decimal
	TotalAmount decimal.Decimal
}

// FeeCalculator computes the service fee and the amount charged for an order.
//
// Rules:
//   - serviceFee = subtotal × ServiceFeeRate
//   - totalAmount = subtotal + serviceFee + deliveryFee
//   - negative inputs are rejected with a ValueIsInvalid error
//
// Arithmetic is exact decimal arithmetic, so Compute(50, 5) yields a service fee
// of exactly 7.5 and a total of exactly 62.5.
type FeeCalculator struct {
	rate decimal.Decimal
}

// NewFeeCalculator returns a calculator using ServiceFeeRate.
func NewFeeCalculator() FeeCalculator {
	return FeeCalculator{rate: ServiceFeeRate}
}

// Compute returns the totals for subtotal and deliveryFee.
func (c FeeCalculator) Compute(subtotal, deliveryFee decimal.Decimal) (Totals, error) {
	if err := errors.Join(
		kernel.ValidateAmount("subtotal", subtotal),
		kernel.ValidateAmount("deliveryFee", deliveryFee),
	); err != nil {
		return Totals{}, err
	}

	rate := c.rate
	if rate.IsZero() {
		rate = ServiceFeeRate
	}

	serviceFee := subtotal.Mul(rate)
	return Totals{
		ServiceFee:  serviceFee,
		TotalAmount: subtotal.Add(serviceFee).Add(deliveryFee),
	}, nil
}
