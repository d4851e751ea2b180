package commands

import (
	"context"
	"time"

	"refill/internal/core/domain/model/order"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"
)

// ConfirmOrderCommandHandler confirms a pending order and auto-assigns a
// rider in the same transaction. The confirmation, the capacity reservation,
// the assignment audit row, and the history entry commit together or not at
// all: when every rider is full, the order stays PENDING.
//
// Example:
//
//	handler := NewConfirmOrderCommandHandler(uowFactory, notifier)
//	cmd, _ := NewConfirmOrderCommand(staff, orderID)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, rider.ErrNoAvailableRider) {
//	    // every rider is out of capacity; retry later
//	}
type ConfirmOrderCommandHandler struct {
	uowFactory OrderRiderUoWFactory
	notifier   ports.StatusNotifier
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(
	uowFactory OrderRiderUoWFactory,
	notifier ports.StatusNotifier,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the confirmation command.
func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().CanConfirmOrders() {
		return errs.NewForbiddenError("confirm order",
			"only staff may confirm orders")
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

	if err = aggregate.Confirm(); err != nil {
		return err
	}

	if _, err = dispatchRider(ctx, uow, aggregate, cmd.Actor().ID()); err != nil {
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
