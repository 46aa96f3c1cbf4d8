// Package services holds pure domain services used by several aggregates.
//
// The package includes:
//   - FeeCalculator: derives the service fee and total amount of an order
package services
