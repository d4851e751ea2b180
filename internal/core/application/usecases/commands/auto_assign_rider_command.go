package commands

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrAutoAssignRiderCommandIsNotConstructed = errors.New(
	"AutoAssignRiderCommand must be created via NewAutoAssignRiderCommand constructor",
)

// AutoAssignRiderCommand represents staff re-running scored dispatch for an
// order, typically after a confirmation lost the capacity race and the
// operator wants another attempt.
type AutoAssignRiderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAutoAssignRiderCommand creates a command for scored rider assignment.
func NewAutoAssignRiderCommand(actor kernel.Actor, orderID kernel.UUID) (AutoAssignRiderCommand, error) {
	cmd := AutoAssignRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
	); err != nil {
		return AutoAssignRiderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoAssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignRiderCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c AutoAssignRiderCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the order to dispatch.
func (c AutoAssignRiderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *AutoAssignRiderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AutoAssignRiderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
