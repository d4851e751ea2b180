package order

import (
	"errors"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

// ErrStatusChangeIsNotConstructed is returned when a StatusChange was not
// created via NewStatusChange.
var ErrStatusChangeIsNotConstructed = errors.New("StatusChange must be created via NewStatusChange constructor")

// StatusChange is one immutable ledger entry in the order's audit history:
// which status the order entered, who caused it, and when. Entries are
// written transactionally alongside the status change itself and are never
// mutated afterwards.
type StatusChange struct {
	orderID   kernel.UUID
	status    Status
	changedBy kernel.UUID
	changedAt time.Time
	guard     guard.ConstructorGuard
}

// NewStatusChange creates a ledger entry for a transition the order just took.
func NewStatusChange(orderID kernel.UUID, status Status, changedBy kernel.UUID, changedAt time.Time) (StatusChange, error) {
	if err := errors.Join(
		orderID.Validate(),
		status.Validate(),
		changedBy.Validate(),
	); err != nil {
		return StatusChange{}, err
	}

	return StatusChange{
		orderID:   orderID,
		status:    status,
		changedBy: changedBy,
		changedAt: changedAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created via NewStatusChange.
func (c StatusChange) Validate() error {
	return c.guard.Validate(ErrStatusChangeIsNotConstructed)
}

// OrderID returns the order the entry belongs to.
func (c StatusChange) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the status the order entered.
func (c StatusChange) Status() Status {
	return c.status
}

// ChangedBy returns the actor that caused the transition.
func (c StatusChange) ChangedBy() kernel.UUID {
	return c.changedBy
}

// ChangedAt returns when the transition happened.
func (c StatusChange) ChangedAt() time.Time {
	return c.changedAt
}
