package commands

import (
	"context"
	"time"

	"refill/internal/core/domain/model/order"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"
)

// CancelOrderCommandHandler handles customer-initiated order cancellation.
// Cancellation is only legal while the order is still PENDING; the domain
// rejects every later stage.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.StatusNotifier
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.StatusNotifier,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the cancellation command. The order is re-fetched and the
// caller's ownership re-validated before any mutation.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().CanPlaceOrders() {
		return errs.NewForbiddenError("cancel order",
			"only customers may cancel their orders")
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

	if !cmd.Actor().Owns(aggregate.CustomerID()) {
		return errs.NewForbiddenError("cancel order",
			"order belongs to another customer")
	}

	if err = aggregate.Cancel(); err != nil {
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
