package commands

import (
	"context"

	"refill/internal/pkg/errs"
)

// SetRiderAvailabilityCommandHandler toggles a rider on or off shift.
// Availability only gates future dispatch; orders already assigned stay with
// the rider.
type SetRiderAvailabilityCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewSetRiderAvailabilityCommandHandler creates a handler for availability toggles.
func NewSetRiderAvailabilityCommandHandler(uowFactory RiderUoWFactory) SetRiderAvailabilityCommandHandler {
	return SetRiderAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the availability toggle. Riders may only toggle
// themselves; staff may toggle anyone.
func (h SetRiderAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetRiderAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	isSelf := cmd.Actor().CanOperateDeliveries() && cmd.Actor().Is(cmd.RiderID())
	if !isSelf && !cmd.Actor().CanManageRiders() {
		return errs.NewForbiddenError("set rider availability",
			"riders may only toggle their own availability")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riderRepo := uow.RiderRepository()
	aggregate, err := riderRepo.Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	aggregate.SetAvailability(cmd.IsAvailable())

	if err = riderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
