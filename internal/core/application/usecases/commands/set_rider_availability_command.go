package commands

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrSetRiderAvailabilityCommandIsNotConstructed = errors.New(
	"SetRiderAvailabilityCommand must be created via NewSetRiderAvailabilityCommand constructor",
)

// SetRiderAvailabilityCommand flips a rider's short-term availability flag.
// Riders toggle themselves on and off shift; staff may toggle any rider.
type SetRiderAvailabilityCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	riderID     kernel.UUID
	isAvailable bool

	guard guard.ConstructorGuard
}

// NewSetRiderAvailabilityCommand creates an availability toggle command.
func NewSetRiderAvailabilityCommand(
	actor kernel.Actor,
	riderID kernel.UUID,
	isAvailable bool,
) (SetRiderAvailabilityCommand, error) {
	cmd := SetRiderAvailabilityCommand{
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setRiderID(riderID),
	); err != nil {
		return SetRiderAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetRiderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderAvailabilityCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c SetRiderAvailabilityCommand) Actor() kernel.Actor {
	return c.actor
}

// RiderID returns the rider being toggled.
func (c SetRiderAvailabilityCommand) RiderID() kernel.UUID {
	return c.riderID
}

// IsAvailable returns the desired availability state.
func (c SetRiderAvailabilityCommand) IsAvailable() bool {
	return c.isAvailable
}

func (c *SetRiderAvailabilityCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *SetRiderAvailabilityCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}
