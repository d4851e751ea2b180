// Package ports defines repository and gateway interfaces for the refill
// fulfillment domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their append-only side records (status history and assignment audit).
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its current status and assignment.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AppendStatusChange records one row of the order's status history.
	// History is append-only; rows are never updated or deleted.
	AppendStatusChange(ctx context.Context, change order.StatusChange) error

	// AddAssignment records the audit trail of a rider assignment.
	AddAssignment(ctx context.Context, assignment order.Assignment) error

	// GetAllByCustomer retrieves a customer's orders, newest first.
	GetAllByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// GetAllByRider retrieves the orders assigned to a rider, newest first.
	GetAllByRider(ctx context.Context, riderID kernel.UUID) ([]*order.Order, error)

	// GetAllInStatus retrieves every order currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
