package commands

import (
	"errors"

	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

var ErrApplyPaymentEventCommandIsNotConstructed = errors.New(
	"ApplyPaymentEventCommand must be created via NewApplyPaymentEventCommand constructor",
)

// ApplyPaymentEventCommand carries one verified gateway webhook event into
// the reconciler. Signature verification happens at the boundary; by the
// time this command exists the payload is trusted.
type ApplyPaymentEventCommand struct { //nolint:recvcheck //using for validation
	provider        string
	providerEventID string
	eventType       string
	intentID        string

	guard guard.ConstructorGuard
}

// NewApplyPaymentEventCommand creates a command from a verified webhook payload.
func NewApplyPaymentEventCommand(
	provider string,
	providerEventID string,
	eventType string,
	intentID string,
) (ApplyPaymentEventCommand, error) {
	cmd := ApplyPaymentEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProvider(provider),
		cmd.setProviderEventID(providerEventID),
		cmd.setEventType(eventType),
		cmd.setIntentID(intentID),
	); err != nil {
		return ApplyPaymentEventCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyPaymentEventCommand) Validate() error {
	return c.guard.Validate(ErrApplyPaymentEventCommandIsNotConstructed)
}

// Provider returns the gateway that sent the event.
func (c ApplyPaymentEventCommand) Provider() string {
	return c.provider
}

// ProviderEventID returns the gateway's own event identifier.
func (c ApplyPaymentEventCommand) ProviderEventID() string {
	return c.providerEventID
}

// EventType returns the gateway's event type string.
func (c ApplyPaymentEventCommand) EventType() string {
	return c.eventType
}

// IntentID returns the gateway intent the event refers to.
func (c ApplyPaymentEventCommand) IntentID() string {
	return c.intentID
}

func (c *ApplyPaymentEventCommand) setProvider(provider string) error {
	if provider == "" {
		return errs.NewValueIsRequiredError("provider")
	}

	c.provider = provider
	return nil
}

func (c *ApplyPaymentEventCommand) setProviderEventID(providerEventID string) error {
	if providerEventID == "" {
		return errs.NewValueIsRequiredError("providerEventId")
	}

	c.providerEventID = providerEventID
	return nil
}

func (c *ApplyPaymentEventCommand) setEventType(eventType string) error {
	if eventType == "" {
		return errs.NewValueIsRequiredError("eventType")
	}

	c.eventType = eventType
	return nil
}

func (c *ApplyPaymentEventCommand) setIntentID(intentID string) error {
	if intentID == "" {
		return errs.NewValueIsRequiredError("intentId")
	}

	c.intentID = intentID
	return nil
}
