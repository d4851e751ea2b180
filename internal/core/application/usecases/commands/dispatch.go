package commands

import (
	"context"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/domain/model/rider"
	"refill/internal/core/domain/services"
)

// dispatchRider runs the scoring engine over the current candidate set and
// reserves the winner's capacity with a conditional write. The in-memory
// selection is advisory only: the conditional write re-validates capacity at
// the store, so losing a race to a concurrent dispatch surfaces as
// rider.ErrNoAvailableRider instead of an over-committed ledger. The caller's
// transaction makes the reservation, the order update, and the assignment
// audit row atomic.
func dispatchRider(
	ctx context.Context,
	uow OrderRiderUoW,
	aggregate *order.Order,
	assignedBy kernel.UUID,
) (*rider.Rider, error) {
	riderRepo := uow.RiderRepository()

	candidates, err := riderRepo.GetAllActiveAvailable(ctx)
	if err != nil {
		return nil, err
	}

	best, err := services.NewRiderDispatcher().Dispatch(aggregate, candidates)
	if err != nil {
		return nil, err
	}

	if err = riderRepo.ReserveCapacity(ctx, best.ID(), aggregate.WaterQuantity()); err != nil {
		return nil, err
	}

	assignment, err := order.NewAssignment(aggregate.ID(), best.ID(), assignedBy, time.Now())
	if err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().AddAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	return best, nil
}
