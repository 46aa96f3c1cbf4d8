// Package cart implements the per-user shopping cart aggregate.
//
// The package includes:
//   - Cart: the aggregate root holding name-keyed line items and the derived total
//   - Item: an immutable line item value object
//
// Key business rules:
//   - A cart holds at most one line per item name; adding an existing name merges quantities
//   - Removing an item decrements its quantity and drops the line when it reaches zero
//   - TotalPrice always equals the sum of unitPrice × quantity over the lines and is
//     recomputed by the aggregate on every mutation
//   - Carts are emptied at checkout, never deleted
package cart
