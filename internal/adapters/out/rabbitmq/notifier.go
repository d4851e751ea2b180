// Package rabbitmq publishes order status changes to a fanout exchange so
// notification workers and analytics can follow the pipeline without touching
// the database. Publishing is best effort: callers log and move on when the
// broker is down.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"refill/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StatusExchange is the fanout exchange order status events are published to.
const StatusExchange = "order_status_fanout"

// channel is the subset of the AMQP channel the notifier uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// connection hands out channels; satisfied by *amqp.Connection.
type connection interface {
	Channel() (*amqp.Channel, error)
}

// statusEvent is the wire format for one status change.
type statusEvent struct {
	OrderID       string    `json:"order_id"`
	CustomerID    string    `json:"customer_id"`
	RiderID       *string   `json:"rider_id,omitempty"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// StatusNotifier implements ports.StatusNotifier over AMQP. Each publish
// opens a short-lived channel on the shared connection, matching the broker's
// one-channel-per-operation guidance for low-volume producers.
type StatusNotifier struct {
	// newChannel is swapped in tests to avoid a live broker
	newChannel func() (channel, error)
}

// NewStatusNotifier creates a notifier on top of an established AMQP
// connection.
func NewStatusNotifier(conn connection) *StatusNotifier {
	return &StatusNotifier{
		newChannel: func() (channel, error) {
			return conn.Channel()
		},
	}
}

// NotifyStatusChanged publishes the order's current status to the fanout
// exchange as a persistent JSON message.
func (n *StatusNotifier) NotifyStatusChanged(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	ch, err := n.newChannel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	if closer, ok := ch.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	if err := ch.ExchangeDeclare(StatusExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	event := statusEvent{
		OrderID:       aggregate.ID().String(),
		CustomerID:    aggregate.CustomerID().String(),
		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		OccurredAt:    time.Now().UTC(),
	}
	if riderID := aggregate.AssignedRider(); riderID != nil {
		id := riderID.String()
		event.RiderID = &id
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal status event: %w", err)
	}

	err = ch.PublishWithContext(ctx, StatusExchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish status event: %w", err)
	}

	return nil
}
