// Package rider provides the Rider aggregate: a delivery agent with bounded
// load capacity and an active-order count, forming the capacity ledger the
// dispatch engine reserves against.
//
// Key business rules:
//   - currentLoadGallons never exceeds maxCapacityGallons; the invariant is
//     enforced by atomic reservation, never by post-hoc correction
//   - Load and count grow on auto-assignment and shrink on order completion
//     or pickup cancellation, floored at zero
//   - Only active, available riders are dispatch candidates
package rider

import (
	"errors"
	"fmt"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

// Domain errors for rider operations.
var (
	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")

	// ErrNameIsRequired is returned when attempting to create a rider without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")

	// ErrNoAvailableRider is the conflict reported when no rider can carry an
	// order: either no candidate passes the capacity filter, or a concurrent
	// reservation consumed the winning candidate's capacity between selection
	// and write. The caller decides whether to retry.
	ErrNoAvailableRider = errors.New("no available rider")
)

// Status classifies whether a rider is part of the active fleet.
type Status int

const (
	// StatusUnknown represents an invalid or undefined rider status.
	StatusUnknown Status = iota

	// StatusActive means the rider is part of the fleet and may be dispatched.
	StatusActive

	// StatusInactive means the rider is off the fleet and never dispatched.
	StatusInactive
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "unknown",
		StatusActive:   "active",
		StatusInactive: "inactive",
	}
}

// StatusFromString parses a persisted rider status string.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("riderStatus",
		fmt.Errorf("%q is not a valid rider status", s))
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Status is one of the defined rider states.
func (s Status) Validate() error {
	if s != StatusActive && s != StatusInactive {
		return errs.NewValueIsInvalidErrorWithCause("riderStatus",
			fmt.Errorf("%d is not a valid rider status", s))
	}
	return nil
}

// Rider is a capacity-ledger entry for one delivery agent: availability,
// maximum load, committed load, and active-order count.
//
// The load counters are the only shared mutable state in the core, so all
// persistent mutation of them goes through a conditional write; the methods
// here express the same invariant for in-memory use and tests.
type Rider struct {
	// id uniquely identifies the rider
	id kernel.UUID

	// name is the human-readable name of the rider
	name string

	// status marks fleet membership (active/inactive)
	status Status

	// isAvailable marks short-term availability within the active fleet
	isAvailable bool

	// maxCapacityGallons is the rider's maximum committed load
	maxCapacityGallons int

	// currentLoadGallons is the load currently reserved against the rider
	currentLoadGallons int

	// activeOrdersCount is the number of orders currently assigned
	activeOrdersCount int

	// guard ensures the rider was properly constructed
	guard guard.ConstructorGuard
}

// NewRider creates an active, available rider with an empty ledger.
func NewRider(id kernel.UUID, name string, maxCapacityGallons int) (*Rider, error) {
	r := &Rider{
		status:      StatusActive,
		isAvailable: true,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setMaxCapacity(maxCapacityGallons),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider reconstructs a Rider aggregate from persistent storage,
// including its committed load and order count.
func RestoreRider(
	id kernel.UUID,
	name string,
	status Status,
	isAvailable bool,
	maxCapacityGallons int,
	currentLoadGallons int,
	activeOrdersCount int,
) (*Rider, error) {
	r := &Rider{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setMaxCapacity(maxCapacityGallons),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if currentLoadGallons < 0 || currentLoadGallons > maxCapacityGallons {
		return nil, errs.NewValueIsOutOfRangeError(
			"currentLoadGallons", currentLoadGallons, 0, maxCapacityGallons)
	}
	if activeOrdersCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("activeOrdersCount",
			fmt.Errorf("%d is negative", activeOrdersCount))
	}

	r.status = status
	r.isAvailable = isAvailable
	r.currentLoadGallons = currentLoadGallons
	r.activeOrdersCount = activeOrdersCount
	return r, nil
}

// Validate checks if the Rider was properly constructed.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// IsEqual compares two riders by their unique identifiers.
func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the rider's unique identifier.
func (r *Rider) ID() kernel.UUID {
	return r.id
}

// Name returns the rider's name.
func (r *Rider) Name() string {
	return r.name
}

// Status returns the rider's fleet status.
func (r *Rider) Status() Status {
	return r.status
}

// IsAvailable reports short-term availability within the active fleet.
func (r *Rider) IsAvailable() bool {
	return r.isAvailable
}

// MaxCapacityGallons returns the maximum committed load.
func (r *Rider) MaxCapacityGallons() int {
	return r.maxCapacityGallons
}

// CurrentLoadGallons returns the load currently reserved against the rider.
func (r *Rider) CurrentLoadGallons() int {
	return r.currentLoadGallons
}

// ActiveOrdersCount returns the number of orders currently assigned.
func (r *Rider) ActiveOrdersCount() int {
	return r.activeOrdersCount
}

// RemainingCapacity returns the gallons still reservable against the rider.
func (r *Rider) RemainingCapacity() int {
	return r.maxCapacityGallons - r.currentLoadGallons
}

// CanCarry reports whether the rider is a dispatch candidate for the given
// load: active, available, and with sufficient remaining capacity.
func (r *Rider) CanCarry(gallons int) bool {
	return r.status == StatusActive &&
		r.isAvailable &&
		gallons > 0 &&
		r.RemainingCapacity() >= gallons
}

// Reserve commits the given load against the rider's ledger, incrementing
// load and active-order count. Fails with ErrNoAvailableRider when the rider
// cannot carry the load, keeping the capacity invariant intact.
func (r *Rider) Reserve(gallons int) error {
	if !r.CanCarry(gallons) {
		return ErrNoAvailableRider
	}

	r.currentLoadGallons += gallons
	r.activeOrdersCount++
	return nil
}

// Release returns the given load to the rider's ledger on order completion
// or pickup cancellation. Both counters floor at zero.
func (r *Rider) Release(gallons int) {
	r.currentLoadGallons -= gallons
	if r.currentLoadGallons < 0 {
		r.currentLoadGallons = 0
	}

	r.activeOrdersCount--
	if r.activeOrdersCount < 0 {
		r.activeOrdersCount = 0
	}
}

// SetAvailability flips the rider's short-term availability flag.
func (r *Rider) SetAvailability(available bool) {
	r.isAvailable = available
}

// Deactivate removes the rider from the active fleet.
func (r *Rider) Deactivate() {
	r.status = StatusInactive
}

// Activate returns the rider to the active fleet.
func (r *Rider) Activate() {
	r.status = StatusActive
}

// setID validates and sets the rider's unique identifier.
func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

// setName validates and sets the rider's name.
func (r *Rider) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}

// setMaxCapacity validates and sets the maximum load.
// Capacity must be positive.
func (r *Rider) setMaxCapacity(maxCapacityGallons int) error {
	if maxCapacityGallons <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxCapacityGallons",
			fmt.Errorf("%d is not greater than 0", maxCapacityGallons))
	}
	r.maxCapacityGallons = maxCapacityGallons
	return nil
}
