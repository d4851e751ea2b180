// Package paymentrepo provides data transfer objects and mapping functions for
// payment persistence: the payment attempts themselves and the append-only
// gateway event log that deduplicates inbound webhooks.
package paymentrepo

import (
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// PaymentDTO represents the database structure for persisting payment
// attempts. The intent id is indexed because webhook processing resolves
// payments by intent, not by primary key.
type PaymentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	Provider       string    `gorm:"type:varchar(32)"`
	Method         string    `gorm:"type:varchar(16)"`
	IntentID       string    `gorm:"type:varchar(255);index"`
	AmountCentavos int64
	State          string `gorm:"type:varchar(16);index"`
	PaidAt         *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for payment entities.
func (PaymentDTO) TableName() string {
	return "payments"
}

// EventDTO represents one inbound gateway callback. The unique index over
// (provider, provider_event_id) is the idempotency barrier: inserting a
// duplicate fails at the database, not in application code.
type EventDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Provider        string    `gorm:"type:varchar(32);uniqueIndex:idx_payment_events_dedup"`
	ProviderEventID string    `gorm:"type:varchar(255);uniqueIndex:idx_payment_events_dedup"`
	EventType       string    `gorm:"type:varchar(64)"`
	IntentID        string    `gorm:"type:varchar(255)"`
	ReceivedAt      time.Time
}

// TableName specifies the database table name for gateway event entries.
func (EventDTO) TableName() string {
	return "payment_events"
}

// fromDomain converts a payment aggregate to its database representation.
func fromDomain(aggregate *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:             aggregate.ID().Bytes(),
		OrderID:        aggregate.OrderID().Bytes(),
		Provider:       aggregate.Provider(),
		Method:         aggregate.Method().String(),
		IntentID:       aggregate.IntentID(),
		AmountCentavos: aggregate.Amount().Centavos(),
		State:          aggregate.State().String(),
		PaidAt:         aggregate.PaidAt(),
	}
}

// toDomain converts a database DTO to a payment aggregate using RestorePayment.
func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	method, err := order.PaymentMethodFromString(dto.Method)
	if err != nil {
		return nil, err
	}

	state, err := payment.StateFromString(dto.State)
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.AmountCentavos)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(id, orderID, dto.Provider, method,
		dto.IntentID, amount, state, dto.PaidAt)
}

// eventFromDomain converts a gateway event to its database row.
func eventFromDomain(event *payment.Event) EventDTO {
	return EventDTO{
		ID:              event.ID().Bytes(),
		Provider:        event.Provider(),
		ProviderEventID: event.ProviderEventID(),
		EventType:       event.EventType(),
		IntentID:        event.IntentID(),
		ReceivedAt:      event.ReceivedAt(),
	}
}
