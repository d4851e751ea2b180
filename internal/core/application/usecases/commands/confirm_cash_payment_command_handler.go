package commands

import (
	"context"
	"time"

	"refill/internal/core/domain/model/order"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"
)

// ConfirmCashPaymentCommandHandler settles a cash order. The idempotency
// guard lives in the domain: a second confirmation fails with
// order.ErrPaymentAlreadyConfirmed before any write happens. Completing the
// order releases the rider's reserved gallons in the same transaction.
type ConfirmCashPaymentCommandHandler struct {
	uowFactory OrderRiderUoWFactory
	notifier   ports.StatusNotifier
}

// NewConfirmCashPaymentCommandHandler creates a handler for cash settlement.
func NewConfirmCashPaymentCommandHandler(
	uowFactory OrderRiderUoWFactory,
	notifier ports.StatusNotifier,
) ConfirmCashPaymentCommandHandler {
	return ConfirmCashPaymentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the cash settlement command.
func (h ConfirmCashPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmCashPaymentCommand) error {
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

	if err = assertAssignedRider(cmd.Actor(), aggregate, "confirm cash payment"); err != nil {
		return err
	}

	// Only cash settles at the door; gateway orders settle through the
	// reconciler.
	if !aggregate.IsCOD() {
		return errs.NewForbiddenError("confirm cash payment",
			"order settles through the payment gateway")
	}

	riderID := *aggregate.AssignedRider()

	if err = aggregate.ConfirmPayment(); err != nil {
		return err
	}

	if aggregate.Status() != order.StatusCompleted {
		if err = aggregate.Complete(); err != nil {
			return err
		}

		change, chErr := order.NewStatusChange(
			aggregate.ID(), aggregate.Status(), cmd.Actor().ID(), time.Now())
		if chErr != nil {
			return chErr
		}
		if err = orderRepo.AppendStatusChange(ctx, change); err != nil {
			return err
		}
	}

	if err = uow.RiderRepository().ReleaseCapacity(ctx, riderID, aggregate.WaterQuantity()); err != nil {
		return err
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
