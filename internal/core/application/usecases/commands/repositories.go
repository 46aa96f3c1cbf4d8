// Package commands contains the use cases that change state: cart edits,
// checkout, payment confirmation, courier claims and administrative updates.
// Every handler validates its command, opens a unit of work, defers a rollback
// and commits only when every repository call succeeded.
package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// Unit of Work interfaces narrow the transaction to the repositories a handler needs.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	RestaurantRepoFactory interface {
		RestaurantRepository() ports.RestaurantRepository
	}

	// CartUoW serves cart edits, which may check the referenced restaurant.
	CartUoW interface {
		TxManager
		CartRepoFactory
		RestaurantRepoFactory
	}

	CartUoWFactory interface {
		Create() CartUoW
	}

	// OrderUoW serves operations touching a single order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UserUoW serves role and courier availability updates.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	RestaurantUoW interface {
		TxManager
		RestaurantRepoFactory
	}

	RestaurantUoWFactory interface {
		Create() RestaurantUoW
	}

	// UoW spans every aggregate. Checkout uses it to create the order and
	// empty the cart atomically; commit uses it to check the courier and claim
	// the order in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   cartRepo := uow.CartRepository()
	//   orderRepo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CartRepoFactory
		OrderRepoFactory
		UserRepoFactory
		RestaurantRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
