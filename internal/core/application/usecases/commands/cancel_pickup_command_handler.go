package commands

import (
	"context"
	"time"

	"refill/internal/core/domain/model/order"
	"refill/internal/core/ports"
)

// CancelPickupCommandHandler reverts an in-flight order to PENDING. The
// rider's reserved gallons go back to their ledger in the same transaction,
// so the freed capacity is immediately visible to the next dispatch.
type CancelPickupCommandHandler struct {
	uowFactory OrderRiderUoWFactory
	notifier   ports.StatusNotifier
}

// NewCancelPickupCommandHandler creates a handler for pickup cancellation.
func NewCancelPickupCommandHandler(
	uowFactory OrderRiderUoWFactory,
	notifier ports.StatusNotifier,
) CancelPickupCommandHandler {
	return CancelPickupCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the pickup cancellation command.
func (h CancelPickupCommandHandler) Handle(ctx context.Context, cmd CancelPickupCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = assertAssignedRider(cmd.Actor(), aggregate, "cancel pickup"); err != nil {
		return err
	}

	riderID := *aggregate.AssignedRider()

	if err = aggregate.CancelPickup(); err != nil {
		return err
	}

	if err = uow.RiderRepository().ReleaseCapacity(ctx, riderID, aggregate.WaterQuantity()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	change, err := order.NewStatusChange(
		aggregate.ID(), aggregate.Status(), cmd.Actor().ID(), time.Now())
	if err != nil {
		return err
	}
	if err = orderRepo.AppendStatusChange(ctx, change); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyStatusChanged(ctx, h.notifier, aggregate)
	return nil
}
