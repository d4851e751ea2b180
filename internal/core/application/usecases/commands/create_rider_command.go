package commands

import (
	"errors"
	"fmt"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/rider"
	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

var ErrCreateRiderCommandIsNotConstructed = errors.New(
	"CreateRiderCommand must be created via NewCreateRiderCommand constructor",
)

// CreateRiderCommand represents registering a new delivery agent with an
// empty capacity ledger.
type CreateRiderCommand struct { //nolint:recvcheck //using for validation
	actor              kernel.Actor
	riderID            kernel.UUID
	name               string
	maxCapacityGallons int

	guard guard.ConstructorGuard
}

// NewCreateRiderCommand creates a command to register a rider.
func NewCreateRiderCommand(
	actor kernel.Actor,
	riderID kernel.UUID,
	name string,
	maxCapacityGallons int,
) (CreateRiderCommand, error) {
	cmd := CreateRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setRiderID(riderID),
		cmd.setName(name),
		cmd.setMaxCapacity(maxCapacityGallons),
	); err != nil {
		return CreateRiderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRiderCommand) Validate() error {
	return c.guard.Validate(ErrCreateRiderCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c CreateRiderCommand) Actor() kernel.Actor {
	return c.actor
}

// RiderID returns the identifier for the new rider.
func (c CreateRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Name returns the rider's display name.
func (c CreateRiderCommand) Name() string {
	return c.name
}

// MaxCapacityGallons returns the rider's load ceiling.
func (c CreateRiderCommand) MaxCapacityGallons() int {
	return c.maxCapacityGallons
}

func (c *CreateRiderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateRiderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *CreateRiderCommand) setName(name string) error {
	if name == "" {
		return rider.ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateRiderCommand) setMaxCapacity(maxCapacityGallons int) error {
	if maxCapacityGallons < 1 {
		return errs.NewValueIsInvalidErrorWithCause("maxCapacityGallons",
			fmt.Errorf("%d is not greater than 0", maxCapacityGallons))
	}

	c.maxCapacityGallons = maxCapacityGallons
	return nil
}
