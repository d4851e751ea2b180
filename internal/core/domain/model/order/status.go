package order

import (
	"errors"
	"fmt"

	"refill/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed transition table to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	PENDING ──┬──> CONFIRMED ──> PICKUP ──> OUT_FOR_DELIVERY ──> DELIVERED ──┬──> PENDING_PAYMENT ──> COMPLETED
//	          │        │            │              │                         └───────────────────────────^
//	          │        └────────────┴───> PENDING (pickup cancelled)
//	          └──> CANCELLED
//
// OUT_FOR_DELIVERY may also move straight to PENDING_PAYMENT (manual rider
// command); DELIVERED may complete directly when the gateway settles the
// payment. COMPLETED and CANCELLED are terminal.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status when an order is first created.
	// Orders in this status are waiting for staff confirmation.
	StatusPending

	// StatusConfirmed indicates staff accepted the order and a rider was dispatched.
	StatusConfirmed

	// StatusPickup indicates the assigned rider accepted the order and is
	// collecting the refill.
	StatusPickup

	// StatusOutForDelivery indicates the rider is en route to the customer.
	StatusOutForDelivery

	// StatusDelivered indicates the water reached the customer but the order
	// is not settled yet.
	StatusDelivered

	// StatusPendingPayment indicates delivery finished and payment collection
	// is in progress.
	StatusPendingPayment

	// StatusCompleted indicates the order is delivered and paid.
	// This is a final state with no further transitions allowed.
	StatusCompleted

	// StatusCancelled indicates the customer withdrew the order before fulfillment.
	// This is a final state with no further transitions allowed.
	StatusCancelled
)

// Transition errors. Both carry typed detail structs below and unwrap to
// these sentinels for classification with errors.Is.
var (
	// ErrSameStatus is the sentinel for transitions where from == to.
	ErrSameStatus = errors.New("order is already in this status")

	// ErrInvalidTransition is the sentinel for transitions the table does not allow.
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// SameStatusError reports an attempted transition into the current status.
type SameStatusError struct {
	Status Status
}

func (e *SameStatusError) Error() string {
	return fmt.Sprintf("order is already in status %s", e.Status)
}

func (e *SameStatusError) Unwrap() error {
	return ErrSameStatus
}

// InvalidTransitionError reports an attempted transition the table does not allow.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transition from %s to %s is not allowed", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "UNKNOWN",
		StatusPending:        "PENDING",
		StatusConfirmed:      "CONFIRMED",
		StatusPickup:         "PICKUP",
		StatusOutForDelivery: "OUT_FOR_DELIVERY",
		StatusDelivered:      "DELIVERED",
		StatusPendingPayment: "PENDING_PAYMENT",
		StatusCompleted:      "COMPLETED",
		StatusCancelled:      "CANCELLED",
	}
}

// getTransitionTable returns the adjacency map of allowed status transitions.
// The table is the single authority on lifecycle edges: every status-changing
// operation calls AssertTransition against it before mutating an order.
// Terminal states map to an empty set.
func getTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:        {StatusConfirmed, StatusCancelled},
		StatusConfirmed:      {StatusPickup, StatusPending, StatusCancelled},
		StatusPickup:         {StatusOutForDelivery, StatusPending},
		StatusOutForDelivery: {StatusDelivered, StatusPendingPayment},
		StatusDelivered:      {StatusPendingPayment, StatusCompleted},
		StatusPendingPayment: {StatusCompleted},
		StatusCompleted:      {},
		StatusCancelled:      {},
	}
}

// StatusFromString parses a persisted or inbound status string.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// String returns the canonical name of the status, e.g. "OUT_FOR_DELIVERY".
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getTransitionTable()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether the status has no outgoing edges.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && len(getTransitionTable()[s]) == 0
}

// AssertTransition verifies that moving from the receiver to the given status
// is legal. It fails with a SameStatusError when to equals the current status,
// and with an InvalidTransitionError when to is not in the allowed set.
//
// Every status-changing operation calls this before mutating the order and
// before appending a history entry, keeping the table the single source of
// truth for lifecycle edges.
func (s Status) AssertTransition(to Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	if s == to {
		return &SameStatusError{Status: s}
	}

	for _, allowed := range getTransitionTable()[s] {
		if allowed == to {
			return nil
		}
	}

	return &InvalidTransitionError{From: s, To: to}
}
