package order

import (
	"errors"
	"fmt"

	"refill/internal/pkg/errs"
)

// ErrPaymentAlreadyConfirmed is returned when confirming payment on an order
// whose payment is already settled. This is the idempotency guard for the
// cash settlement path.
var ErrPaymentAlreadyConfirmed = errors.New("payment is already confirmed")

// PaymentMethod is how the customer settles an order.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodCOD is cash on delivery, settled by the rider at the door.
	PaymentMethodCOD

	// PaymentMethodGCash is settled asynchronously through the payment gateway.
	PaymentMethodGCash
)

// getPaymentMethodStrings returns a map of PaymentMethod values to their string representations.
func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "UNKNOWN",
		PaymentMethodCOD:     "COD",
		PaymentMethodGCash:   "GCASH",
	}
}

// PaymentMethodFromString parses a persisted or inbound payment method string.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for pm, str := range getPaymentMethodStrings() {
		if pm != PaymentMethodUnknown && str == s {
			return pm, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a valid payment method", s))
}

// String returns the canonical name of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks if the PaymentMethod is one of the defined methods.
func (m PaymentMethod) Validate() error {
	if m != PaymentMethodCOD && m != PaymentMethodGCash {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// PaymentStatus tracks settlement progress on the order itself.
// It reaches PAID only through the payment reconciler (gateway settlement)
// or the cash confirmation path.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusUnpaid is the initial state: no payment attempt exists.
	PaymentStatusUnpaid

	// PaymentStatusPending means a gateway payment intent was created and
	// settlement has not arrived yet.
	PaymentStatusPending

	// PaymentStatusPaid means the order is settled.
	PaymentStatusPaid

	// PaymentStatusFailed means the gateway reported a failed settlement.
	PaymentStatusFailed
)

// getPaymentStatusStrings returns a map of PaymentStatus values to their string representations.
func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "UNKNOWN",
		PaymentStatusUnpaid:  "UNPAID",
		PaymentStatusPending: "PENDING",
		PaymentStatusPaid:    "PAID",
		PaymentStatusFailed:  "FAILED",
	}
}

// PaymentStatusFromString parses a persisted or inbound payment status string.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for ps, str := range getPaymentStatusStrings() {
		if ps != PaymentStatusUnknown && str == s {
			return ps, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}

// String returns the canonical name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks if the PaymentStatus is one of the defined states.
func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return nil
	case PaymentStatusUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%d is not a valid payment status", s))
}
