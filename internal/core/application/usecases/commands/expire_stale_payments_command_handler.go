package commands

import (
	"context"
	"log/slog"
	"time"
)

// ExpireStalePaymentsCommandHandler fails gateway payments whose checkout
// was never finished. The customer abandoned the flow; failing the payment
// lets them retry with a fresh intent instead of leaving the order wedged.
type ExpireStalePaymentsCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
}

// NewExpireStalePaymentsCommandHandler creates a handler for the expiry sweep.
func NewExpireStalePaymentsCommandHandler(uowFactory OrderPaymentUoWFactory) ExpireStalePaymentsCommandHandler {
	return ExpireStalePaymentsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle sweeps every stale PENDING payment to FAILED in one transaction.
func (h ExpireStalePaymentsCommandHandler) Handle(ctx context.Context, cmd ExpireStalePaymentsCommand) error {
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
	cutoff := time.Now().Add(-cmd.MaxAge())

	stale, err := paymentRepo.GetAllStalePending(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return uow.Commit(ctx)
	}

	orderRepo := uow.OrderRepository()
	for _, attempt := range stale {
		attempt.MarkFailed()
		if err = paymentRepo.Update(ctx, attempt); err != nil {
			return err
		}

		aggregate, getErr := orderRepo.Get(ctx, attempt.OrderID())
		if getErr != nil {
			return getErr
		}

		aggregate.MarkPaymentFailed()
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		slog.Info("expired stale gateway payment",
			"paymentId", attempt.ID().String(),
			"orderId", attempt.OrderID().String())
	}

	return uow.Commit(ctx)
}
