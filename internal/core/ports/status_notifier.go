package ports

import (
	"context"

	"refill/internal/core/domain/model/order"
)

// StatusNotifier publishes order status changes to downstream consumers
// (notification workers, analytics). Publishing happens after commit and is
// best-effort: a broker outage must never fail the command that caused it.
type StatusNotifier interface {
	// NotifyStatusChanged publishes the order's current status.
	NotifyStatusChanged(ctx context.Context, aggregate *order.Order) error
}
