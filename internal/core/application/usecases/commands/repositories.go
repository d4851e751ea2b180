// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization,
// transaction management, and persistence.
package commands

import (
	"context"

	"refill/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RiderRepoFactory provides access to rider repository within a transaction.
	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	// PaymentRepoFactory provides access to payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RiderUoW manages transactions for rider-registry-only operations.
	RiderUoW interface {
		TxManager
		RiderRepoFactory
	}

	// RiderUoWFactory creates new rider unit of work instances.
	RiderUoWFactory interface {
		Create() RiderUoW
	}

	// OrderRiderUoW manages transactions spanning the order and the rider
	// capacity ledger. Used by dispatch and by commands that release capacity.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   riderRepo := uow.RiderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderRiderUoW interface {
		TxManager
		OrderRepoFactory
		RiderRepoFactory
	}

	// OrderRiderUoWFactory creates unit of work instances for dispatch operations.
	OrderRiderUoWFactory interface {
		Create() OrderRiderUoW
	}

	// OrderPaymentUoW manages transactions spanning the order and its payment
	// attempts. Used by order creation and the payment reconciliation path.
	OrderPaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
	}

	// OrderPaymentUoWFactory creates unit of work instances for payment operations.
	OrderPaymentUoWFactory interface {
		Create() OrderPaymentUoW
	}

	// OrderPaymentRiderUoW manages transactions spanning the order, its payment
	// attempts, and the rider capacity ledger. Used by the webhook reconciler,
	// which may complete a delivered order and release its rider's gallons.
	OrderPaymentRiderUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
		RiderRepoFactory
	}

	// OrderPaymentRiderUoWFactory creates unit of work instances for the reconciler.
	OrderPaymentRiderUoWFactory interface {
		Create() OrderPaymentRiderUoW
	}
)
