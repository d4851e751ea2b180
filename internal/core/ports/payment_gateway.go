package ports

import (
	"context"
	"fmt"

	"refill/internal/core/domain/model/kernel"
)

// PaymentIntent is the gateway's handle on a pending settlement: the intent
// identifier the webhook will reference and the checkout URL the customer is
// sent to.
type PaymentIntent struct {
	ID          string
	CheckoutURL string
}

// UpstreamPaymentError wraps a gateway-side failure so callers can
// distinguish "the gateway said no" from local faults.
type UpstreamPaymentError struct {
	Provider   string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *UpstreamPaymentError) Error() string {
	return fmt.Sprintf("payment gateway %s failed with status %d: %v",
		e.Provider, e.StatusCode, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *UpstreamPaymentError) Unwrap() error {
	return e.Cause
}

// PaymentGateway defines the outbound contract with the payment provider.
type PaymentGateway interface {
	// CreateIntent registers a settlement intent for the order's total with
	// the provider. Gateway failures come back as *UpstreamPaymentError.
	CreateIntent(ctx context.Context, orderID kernel.UUID, amount kernel.Money) (*PaymentIntent, error)
}
