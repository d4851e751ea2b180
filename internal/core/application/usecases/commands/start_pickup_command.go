package commands

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrStartPickupCommandIsNotConstructed = errors.New(
	"StartPickupCommand must be created via NewStartPickupCommand constructor",
)

// StartPickupCommand represents the assigned rider accepting a confirmed
// order and heading to the refilling station.
type StartPickupCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartPickupCommand creates a command to begin pickup.
func NewStartPickupCommand(actor kernel.Actor, orderID kernel.UUID) (StartPickupCommand, error) {
	cmd := StartPickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
	); err != nil {
		return StartPickupCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPickupCommand) Validate() error {
	return c.guard.Validate(ErrStartPickupCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c StartPickupCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the order being picked up.
func (c StartPickupCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *StartPickupCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *StartPickupCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
