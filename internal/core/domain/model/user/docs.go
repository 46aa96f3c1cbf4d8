// Package user models the people the ordering flow refers to: customers,
// administrators and couriers.
//
// Profile fields are read-only here; registration and profile editing belong to
// the identity provider. The aggregate owns the role set and the courier
// availability flag, which gate who may claim deliveries.
package user
