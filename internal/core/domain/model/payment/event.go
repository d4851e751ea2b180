package payment

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
	"time"
)

// Webhook event errors.
var (
	// ErrEventIsNotConstructed is returned when using an improperly initialized Event.
	ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

	// ErrEventAlreadyProcessed signals an inbound webhook event whose provider
	// event identifier was already recorded. Handlers treat it as a no-op.
	ErrEventAlreadyProcessed = errors.New("payment event has already been processed")
)

// Event kinds the reconciler understands. Gateway payloads carry more types;
// anything outside this set is recorded and otherwise ignored.
const (
	EventTypePaid       = "payment.paid"
	EventTypeFailed     = "payment.failed"
	EventTypeProcessing = "payment.processing"
)

// Event is one inbound gateway callback, kept for audit and idempotency.
// The (provider, providerEventID) pair is unique: replaying the same webhook
// must not settle an order twice.
type Event struct {
	// id uniquely identifies the stored event
	id kernel.UUID

	// provider names the gateway that sent the event
	provider string

	// providerEventID is the gateway's own event identifier, the dedup key
	providerEventID string

	// eventType is the gateway's event type string
	eventType string

	// intentID is the gateway intent the event refers to
	intentID string

	// receivedAt is when the event arrived
	receivedAt time.Time

	// guard ensures the event was properly constructed
	guard guard.ConstructorGuard
}

// NewEvent records an inbound gateway callback.
func NewEvent(
	id kernel.UUID,
	provider string,
	providerEventID string,
	eventType string,
	intentID string,
	receivedAt time.Time,
) (*Event, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if provider == "" {
		return nil, errs.NewValueIsRequiredError("provider")
	}
	if providerEventID == "" {
		return nil, errs.NewValueIsRequiredError("providerEventId")
	}
	if eventType == "" {
		return nil, errs.NewValueIsRequiredError("eventType")
	}
	if intentID == "" {
		return nil, ErrIntentIDIsRequired
	}

	return &Event{
		id:              id,
		provider:        provider,
		providerEventID: providerEventID,
		eventType:       eventType,
		intentID:        intentID,
		receivedAt:      receivedAt,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Event was properly constructed.
func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// ID returns the stored event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// Provider returns the gateway that sent the event.
func (e *Event) Provider() string {
	return e.provider
}

// ProviderEventID returns the gateway's own event identifier.
func (e *Event) ProviderEventID() string {
	return e.providerEventID
}

// EventType returns the gateway's event type string.
func (e *Event) EventType() string {
	return e.eventType
}

// IntentID returns the gateway intent the event refers to.
func (e *Event) IntentID() string {
	return e.intentID
}

// ReceivedAt returns when the event arrived.
func (e *Event) ReceivedAt() time.Time {
	return e.receivedAt
}
