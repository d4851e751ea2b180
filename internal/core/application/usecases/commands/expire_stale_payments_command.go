package commands

import (
	"errors"
	"fmt"
	"time"

	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

var ErrExpireStalePaymentsCommandIsNotConstructed = errors.New(
	"ExpireStalePaymentsCommand must be created via NewExpireStalePaymentsCommand constructor",
)

// ExpireStalePaymentsCommand sweeps gateway payments that sat PENDING longer
// than the configured age to FAILED. Driven by the background expiry job,
// not by a caller.
type ExpireStalePaymentsCommand struct { //nolint:recvcheck //using for validation
	maxAge time.Duration

	guard guard.ConstructorGuard
}

// NewExpireStalePaymentsCommand creates a sweep command with the given age limit.
func NewExpireStalePaymentsCommand(maxAge time.Duration) (ExpireStalePaymentsCommand, error) {
	cmd := ExpireStalePaymentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setMaxAge(maxAge); err != nil {
		return ExpireStalePaymentsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireStalePaymentsCommand) Validate() error {
	return c.guard.Validate(ErrExpireStalePaymentsCommandIsNotConstructed)
}

// MaxAge returns how long a payment may stay PENDING before it expires.
func (c ExpireStalePaymentsCommand) MaxAge() time.Duration {
	return c.maxAge
}

func (c *ExpireStalePaymentsCommand) setMaxAge(maxAge time.Duration) error {
	if maxAge <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxAge",
			fmt.Errorf("%s is not a positive duration", maxAge))
	}

	c.maxAge = maxAge
	return nil
}
