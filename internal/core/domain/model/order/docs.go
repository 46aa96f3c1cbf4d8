// Package order provides the order ledger: the Order aggregate, its delivery
// Status set and the domain events it raises.
//
// Key business rules:
//   - serviceFee = 15% of the subtotal and totalAmount = subtotal + serviceFee + deliveryFee
//   - payment is confirmed at most once; repeated confirmation is a no-op
//   - a courier claims an order at most once, moving it to Out for Delivery
//   - status names outside Pending, Food Processing, Out for Delivery, Delivered
//     and Cancelled are rejected
package order
