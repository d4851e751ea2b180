// Package payment provides the Payment aggregate and its append-only event
// trail. A Payment is one settlement attempt on an order against an external
// gateway; PaymentEvents record every inbound gateway callback for audit and
// replay, deduplicated by the provider's event identifier.
package payment

import (
	"errors"
	"fmt"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

// Domain errors for payment operations.
var (
	// ErrPaymentIsNotConstructed is returned when using an improperly initialized Payment.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

	// ErrIntentIDIsRequired is returned when a gateway payment lacks its intent reference.
	ErrIntentIDIsRequired = errs.NewValueIsRequiredError("intentId")
)

// State tracks a payment attempt through the gateway.
type State int

const (
	// StateUnknown represents an invalid or undefined payment state.
	StateUnknown State = iota

	// StatePending means the intent exists and settlement has not arrived.
	StatePending

	// StateProcessing means the gateway reported the payment in flight.
	StateProcessing

	// StatePaid means the gateway settled the payment.
	StatePaid

	// StateFailed means the gateway reported a failed settlement.
	StateFailed

	// StateRefunded means a settled payment was returned to the customer.
	StateRefunded
)

// getStateStrings returns a map of State values to their string representations.
func getStateStrings() map[State]string {
	return map[State]string{
		StateUnknown:    "UNKNOWN",
		StatePending:    "PENDING",
		StateProcessing: "PROCESSING",
		StatePaid:       "PAID",
		StateFailed:     "FAILED",
		StateRefunded:   "REFUNDED",
	}
}

// StateFromString parses a persisted payment state string.
func StateFromString(s string) (State, error) {
	for state, str := range getStateStrings() {
		if state != StateUnknown && str == s {
			return state, nil
		}
	}
	return StateUnknown, errs.NewValueIsInvalidErrorWithCause("paymentState",
		fmt.Errorf("%q is not a valid payment state", s))
}

// String returns the canonical name of the state.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks if the State is one of the defined settlement states.
func (s State) Validate() error {
	switch s {
	case StatePending, StateProcessing, StatePaid, StateFailed, StateRefunded:
		return nil
	case StateUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("paymentState",
		fmt.Errorf("%d is not a valid payment state", s))
}

// Payment is one settlement attempt on an order: the gateway intent it maps
// to, the amount, and the settlement state. The payment reconciler is the
// only writer after creation.
type Payment struct {
	// id uniquely identifies the payment attempt
	id kernel.UUID

	// orderID references the order being settled
	orderID kernel.UUID

	// provider names the gateway, e.g. "paymongo"
	provider string

	// method is the settlement method the attempt uses
	method order.PaymentMethod

	// intentID is the gateway-side intent reference
	intentID string

	// amount is the expected settlement amount
	amount kernel.Money

	// state tracks settlement progress
	state State

	// paidAt is when the gateway confirmed settlement (nil until paid)
	paidAt *time.Time

	// guard ensures the payment was properly constructed
	guard guard.ConstructorGuard
}

// NewPayment creates a PENDING payment attempt for an order, bound to the
// gateway intent the reconciler just created.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	provider string,
	method order.PaymentMethod,
	intentID string,
	amount kernel.Money,
) (*Payment, error) {
	p := &Payment{
		state: StatePending,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setProvider(provider),
		p.setMethod(method),
		p.setIntentID(intentID),
	); err != nil {
		return nil, err
	}

	p.amount = amount
	return p, nil
}

// RestorePayment reconstructs a Payment aggregate from persistent storage.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	provider string,
	method order.PaymentMethod,
	intentID string,
	amount kernel.Money,
	state State,
	paidAt *time.Time,
) (*Payment, error) {
	p := &Payment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setProvider(provider),
		p.setMethod(method),
		p.setIntentID(intentID),
		state.Validate(),
	); err != nil {
		return nil, err
	}

	p.amount = amount
	p.state = state
	p.paidAt = paidAt
	return p, nil
}

// Validate checks if the Payment was properly constructed.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the order being settled.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// Provider returns the gateway name.
func (p *Payment) Provider() string {
	return p.provider
}

// Method returns the settlement method.
func (p *Payment) Method() order.PaymentMethod {
	return p.method
}

// IntentID returns the gateway-side intent reference.
func (p *Payment) IntentID() string {
	return p.intentID
}

// Amount returns the expected settlement amount.
func (p *Payment) Amount() kernel.Money {
	return p.amount
}

// State returns the settlement state.
func (p *Payment) State() State {
	return p.state
}

// PaidAt returns when the gateway confirmed settlement, or nil.
func (p *Payment) PaidAt() *time.Time {
	return p.paidAt
}

// MarkPaid records a settled payment with its settlement timestamp.
func (p *Payment) MarkPaid(at time.Time) {
	p.state = StatePaid
	p.paidAt = &at
}

// MarkProcessing records the gateway reporting the payment in flight.
func (p *Payment) MarkProcessing() {
	p.state = StateProcessing
}

// MarkFailed records a failed settlement.
func (p *Payment) MarkFailed() {
	p.state = StateFailed
}

// MarkRefunded records a settled payment returned to the customer.
func (p *Payment) MarkRefunded() {
	p.state = StateRefunded
}

// setID validates and sets the payment's unique identifier.
func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setOrderID validates and sets the order reference.
func (p *Payment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

// setProvider validates and sets the gateway name.
func (p *Payment) setProvider(provider string) error {
	if provider == "" {
		return errs.NewValueIsRequiredError("provider")
	}
	p.provider = provider
	return nil
}

// setMethod validates and sets the settlement method.
func (p *Payment) setMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.method = method
	return nil
}

// setIntentID validates and sets the gateway intent reference.
func (p *Payment) setIntentID(intentID string) error {
	if intentID == "" {
		return ErrIntentIDIsRequired
	}
	p.intentID = intentID
	return nil
}
