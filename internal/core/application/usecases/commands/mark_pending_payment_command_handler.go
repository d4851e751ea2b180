package commands

import (
	"context"
	"time"

	"refill/internal/core/domain/model/order"
	"refill/internal/core/ports"
)

// MarkPendingPaymentCommandHandler performs the manual transition into
// PENDING_PAYMENT for riders whose flow did not cascade automatically.
type MarkPendingPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.StatusNotifier
}

// NewMarkPendingPaymentCommandHandler creates a handler for the manual transition.
func NewMarkPendingPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.StatusNotifier,
) MarkPendingPaymentCommandHandler {
	return MarkPendingPaymentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the manual pending-payment command.
func (h MarkPendingPaymentCommandHandler) Handle(ctx context.Context, cmd MarkPendingPaymentCommand) error {
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

	if err = assertAssignedRider(cmd.Actor(), aggregate, "mark pending payment"); err != nil {
		return err
	}

	if err = aggregate.MarkPendingPayment(); err != nil {
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
