package ports

import (
	"context"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates and
// their capacity ledgers.
type RiderRepository interface {
	// Add persists a new rider aggregate to storage.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists changes to an existing rider aggregate.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetAllActiveAvailable retrieves every rider who is active, available,
	// and therefore a dispatch candidate.
	GetAllActiveAvailable(ctx context.Context) ([]*rider.Rider, error)

	// ReserveCapacity commits gallons against the rider's ledger with a
	// conditional write: the reservation succeeds only if the rider is still
	// active, available, and has room at write time. Two dispatchers racing
	// for the same last slot cannot both win; the loser gets
	// rider.ErrNoAvailableRider.
	ReserveCapacity(ctx context.Context, riderID kernel.UUID, gallons int) error

	// ReleaseCapacity returns gallons to the rider's ledger on completion or
	// pickup cancellation. Both counters floor at zero.
	ReleaseCapacity(ctx context.Context, riderID kernel.UUID, gallons int) error
}
