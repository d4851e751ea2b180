package ports

import (
	"context"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment attempts and
// their inbound webhook event log.
type PaymentRepository interface {
	// Add persists a new payment attempt to storage.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists changes to an existing payment attempt.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment attempt by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetByIntentID retrieves the payment attempt bound to a gateway intent.
	// Webhook handlers use this to map gateway callbacks back to orders.
	GetByIntentID(ctx context.Context, intentID string) (*payment.Payment, error)

	// AppendEvent records one inbound gateway callback. The event log is the
	// idempotency barrier: a second event with the same provider event id
	// fails with payment.ErrEventAlreadyProcessed.
	AppendEvent(ctx context.Context, event *payment.Event) error

	// GetAllStalePending retrieves gateway payments still PENDING that were
	// created before the cutoff. The expiry job sweeps these to FAILED.
	GetAllStalePending(ctx context.Context, createdBefore time.Time) ([]*payment.Payment, error)
}
