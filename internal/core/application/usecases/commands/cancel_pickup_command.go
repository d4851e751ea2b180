package commands

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrCancelPickupCommandIsNotConstructed = errors.New(
	"CancelPickupCommand must be created via NewCancelPickupCommand constructor",
)

// CancelPickupCommand represents the assigned rider abandoning a pickup.
// The order reverts to PENDING, the assignment is cleared, and the rider's
// reserved capacity is released.
type CancelPickupCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelPickupCommand creates a command to abandon a pickup.
func NewCancelPickupCommand(actor kernel.Actor, orderID kernel.UUID) (CancelPickupCommand, error) {
	cmd := CancelPickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
	); err != nil {
		return CancelPickupCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelPickupCommand) Validate() error {
	return c.guard.Validate(ErrCancelPickupCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c CancelPickupCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the order whose pickup is abandoned.
func (c CancelPickupCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *CancelPickupCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CancelPickupCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
