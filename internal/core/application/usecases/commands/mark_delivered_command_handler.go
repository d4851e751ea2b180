package commands

import (
	"context"
	"time"

	"refill/internal/core/domain/model/order"
	"refill/internal/core/ports"
)

// MarkDeliveredCommandHandler records the handover. Cash orders cascade
// straight to PENDING_PAYMENT inside the same transaction, producing two
// history rows. Gateway orders whose settlement already arrived in transit
// cascade to COMPLETED and release the rider's gallons; unpaid gateway
// orders stay DELIVERED until the webhook settles them.
type MarkDeliveredCommandHandler struct {
	uowFactory OrderRiderUoWFactory
	notifier   ports.StatusNotifier
}

// NewMarkDeliveredCommandHandler creates a handler for the delivered command.
func NewMarkDeliveredCommandHandler(
	uowFactory OrderRiderUoWFactory,
	notifier ports.StatusNotifier,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the delivered command.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
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

	if err = assertAssignedRider(cmd.Actor(), aggregate, "mark delivered"); err != nil {
		return err
	}

	riderID := *aggregate.AssignedRider()

	if err = aggregate.MarkDelivered(); err != nil {
		return err
	}
	if err = h.appendChange(ctx, orderRepo, aggregate, cmd); err != nil {
		return err
	}

	switch {
	case aggregate.IsCOD():
		// Cash settles in person, so the order immediately starts waiting
		// for the rider to collect.
		if err = aggregate.MarkPendingPayment(); err != nil {
			return err
		}
		if err = h.appendChange(ctx, orderRepo, aggregate, cmd); err != nil {
			return err
		}
	case aggregate.PaymentStatus() == order.PaymentStatusPaid:
		// The gateway settled while the order was in transit; the handover
		// is the last outstanding step, so finish and free the rider.
		if err = aggregate.Complete(); err != nil {
			return err
		}
		if err = h.appendChange(ctx, orderRepo, aggregate, cmd); err != nil {
			return err
		}
		if err = uow.RiderRepository().ReleaseCapacity(ctx, riderID, aggregate.WaterQuantity()); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyStatusChanged(ctx, h.notifier, aggregate)
	return nil
}

func (h MarkDeliveredCommandHandler) appendChange(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	aggregate *order.Order,
	cmd MarkDeliveredCommand,
) error {
	change, err := order.NewStatusChange(
		aggregate.ID(), aggregate.Status(), cmd.Actor().ID(), time.Now())
	if err != nil {
		return err
	}
	return orderRepo.AppendStatusChange(ctx, change)
}
