package order

import (
	"errors"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment was not
// created via NewAssignment.
var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

// Assignment is one append-only audit row per assignment event: which rider
// was attached to which order, by whom, and when. Manual and scored
// assignments both produce a row.
type Assignment struct {
	orderID    kernel.UUID
	riderID    kernel.UUID
	assignedBy kernel.UUID
	assignedAt time.Time
	guard      guard.ConstructorGuard
}

// NewAssignment creates an audit row for an assignment that just happened.
func NewAssignment(orderID, riderID, assignedBy kernel.UUID, assignedAt time.Time) (Assignment, error) {
	if err := errors.Join(
		orderID.Validate(),
		riderID.Validate(),
		assignedBy.Validate(),
	); err != nil {
		return Assignment{}, err
	}

	return Assignment{
		orderID:    orderID,
		riderID:    riderID,
		assignedBy: assignedBy,
		assignedAt: assignedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the row was created via NewAssignment.
func (a Assignment) Validate() error {
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// OrderID returns the order that was assigned.
func (a Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// RiderID returns the rider that received the order.
func (a Assignment) RiderID() kernel.UUID {
	return a.riderID
}

// AssignedBy returns the actor that caused the assignment. For scored
// auto-assignment this is the confirming staff member.
func (a Assignment) AssignedBy() kernel.UUID {
	return a.assignedBy
}

// AssignedAt returns when the assignment happened.
func (a Assignment) AssignedAt() time.Time {
	return a.assignedAt
}
