package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/domain/model/payment"
	"refill/internal/core/ports"
)

// ApplyPaymentEventCommandHandler is the inbound half of the payment
// reconciler. It maps a gateway event back to its payment via the intent id,
// records the event in the audit log, and advances payment and order state.
//
// Webhooks can arrive at any time, in any order, and more than once. The
// handler is safe against all three:
//   - the event log's dedup key turns a replayed event into a committed no-op
//   - a paid event completes the order only when it is currently DELIVERED;
//     an order still in transit keeps its status and only the payment moves
//   - unrecognized event types are recorded and otherwise ignored
type ApplyPaymentEventCommandHandler struct {
	uowFactory OrderPaymentRiderUoWFactory
	notifier   ports.StatusNotifier
}

// NewApplyPaymentEventCommandHandler creates the webhook reconciliation handler.
func NewApplyPaymentEventCommandHandler(
	uowFactory OrderPaymentRiderUoWFactory,
	notifier ports.StatusNotifier,
) ApplyPaymentEventCommandHandler {
	return ApplyPaymentEventCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes one verified gateway event.
func (h ApplyPaymentEventCommandHandler) Handle(ctx context.Context, cmd ApplyPaymentEventCommand) error {
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

	paymentRepo := uow.PaymentRepository()
	attempt, err := paymentRepo.GetByIntentID(ctx, cmd.IntentID())
	if err != nil {
		return err
	}

	event, err := payment.NewEvent(
		kernel.NewUUID(),
		cmd.Provider(),
		cmd.ProviderEventID(),
		cmd.EventType(),
		cmd.IntentID(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	if err = paymentRepo.AppendEvent(ctx, event); err != nil {
		if errors.Is(err, payment.ErrEventAlreadyProcessed) {
			slog.Info("duplicate payment event ignored",
				"provider", cmd.Provider(),
				"eventId", cmd.ProviderEventID())
			return nil
		}
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, attempt.OrderID())
	if err != nil {
		return err
	}

	var notify bool
	switch cmd.EventType() {
	case payment.EventTypePaid:
		notify, err = h.applyPaid(ctx, uow, attempt, aggregate)
	case payment.EventTypeFailed:
		attempt.MarkFailed()
		aggregate.MarkPaymentFailed()
	case payment.EventTypeProcessing:
		attempt.MarkProcessing()
	default:
		slog.Info("unrecognized payment event type recorded",
			"eventType", cmd.EventType(),
			"eventId", cmd.ProviderEventID())
	}
	if err != nil {
		return err
	}

	if err = uow.PaymentRepository().Update(ctx, attempt); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if notify {
		notifyStatusChanged(ctx, h.notifier, aggregate)
	}
	return nil
}

// applyPaid marks the payment settled and, when the order already reached
// DELIVERED, completes it and releases the rider's reserved gallons. An order
// still in transit keeps its status; the mark-delivered handover observes the
// PAID payment and performs the same completion later.
func (h ApplyPaymentEventCommandHandler) applyPaid(
	ctx context.Context,
	uow OrderPaymentRiderUoW,
	attempt *payment.Payment,
	aggregate *order.Order,
) (bool, error) {
	attempt.MarkPaid(time.Now())

	if err := aggregate.ConfirmPayment(); err != nil {
		if errors.Is(err, order.ErrPaymentAlreadyConfirmed) {
			return false, nil
		}
		return false, err
	}

	if aggregate.Status() != order.StatusDelivered {
		return false, nil
	}

	riderID := aggregate.AssignedRider()

	if err := aggregate.Complete(); err != nil {
		return false, err
	}

	change, err := order.NewStatusChange(
		aggregate.ID(), aggregate.Status(), kernel.SystemActorID(), time.Now())
	if err != nil {
		return false, err
	}
	if err = uow.OrderRepository().AppendStatusChange(ctx, change); err != nil {
		return false, err
	}

	if riderID != nil {
		err = uow.RiderRepository().ReleaseCapacity(ctx, *riderID, aggregate.WaterQuantity())
		if err != nil {
			return false, err
		}
	}

	return true, nil
}
