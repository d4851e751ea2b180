package commands

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrMarkPendingPaymentCommandIsNotConstructed = errors.New(
	"MarkPendingPaymentCommand must be created via NewMarkPendingPaymentCommand constructor",
)

// MarkPendingPaymentCommand represents the assigned rider explicitly moving
// a delivered order into the awaiting-settlement stage.
type MarkPendingPaymentCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkPendingPaymentCommand creates a command to await settlement.
func NewMarkPendingPaymentCommand(actor kernel.Actor, orderID kernel.UUID) (MarkPendingPaymentCommand, error) {
	cmd := MarkPendingPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
	); err != nil {
		return MarkPendingPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPendingPaymentCommand) Validate() error {
	return c.guard.Validate(ErrMarkPendingPaymentCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c MarkPendingPaymentCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the order awaiting settlement.
func (c MarkPendingPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *MarkPendingPaymentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *MarkPendingPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
