package commands

import (
	"context"
	"log/slog"

	"refill/internal/core/domain/model/order"
	"refill/internal/core/ports"
)

// notifyStatusChanged publishes the order's new status after the transaction
// committed. Publishing is best-effort: a broker outage is logged and never
// fails the command that already committed.
func notifyStatusChanged(ctx context.Context, notifier ports.StatusNotifier, aggregate *order.Order) {
	if notifier == nil {
		return
	}

	if err := notifier.NotifyStatusChanged(ctx, aggregate); err != nil {
		slog.Warn("failed to publish order status change",
			"orderId", aggregate.ID().String(),
			"status", aggregate.Status().String(),
			"error", err)
	}
}
