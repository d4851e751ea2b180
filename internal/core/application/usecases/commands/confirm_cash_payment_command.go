package commands

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrConfirmCashPaymentCommandIsNotConstructed = errors.New(
	"ConfirmCashPaymentCommand must be created via NewConfirmCashPaymentCommand constructor",
)

// ConfirmCashPaymentCommand represents the assigned rider collecting cash
// and completing the order in one step.
type ConfirmCashPaymentCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmCashPaymentCommand creates a command to settle a cash order.
func NewConfirmCashPaymentCommand(actor kernel.Actor, orderID kernel.UUID) (ConfirmCashPaymentCommand, error) {
	cmd := ConfirmCashPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
	); err != nil {
		return ConfirmCashPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmCashPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmCashPaymentCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c ConfirmCashPaymentCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the order being settled.
func (c ConfirmCashPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *ConfirmCashPaymentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ConfirmCashPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
