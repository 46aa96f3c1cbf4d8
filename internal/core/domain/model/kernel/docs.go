// Package kernel holds the primitives shared by every aggregate of the food
// ordering domain.
//
// The package includes:
//   - UUID: the identifier value object used by users, carts, orders and restaurants
//   - ValidateAmount: the non-negative check applied to every monetary value
//   - DomainEvent and EventRecorder: the event contract aggregates use to report changes
package kernel
