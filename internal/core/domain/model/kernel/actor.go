package kernel

import (
	"fmt"

	"refill/internal/pkg/errs"
)

// Role classifies the authenticated caller of a command.
// Identity and session management live outside the core: callers arrive
// already authenticated, carrying a role and an id, and the core trusts
// this input.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer places and cancels their own orders.
	RoleCustomer

	// RoleRider executes pickup and delivery for assigned orders.
	RoleRider

	// RoleStaff confirms orders, assigns riders, and manages the rider registry.
	RoleStaff

	// RoleAdmin holds every staff capability.
	RoleAdmin
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleRider:    "rider",
		RoleStaff:    "staff",
		RoleAdmin:    "admin",
	}
}

// RoleFromString parses a role string as delivered by the identity boundary.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the role is one of the defined caller roles.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleRider, RoleStaff, RoleAdmin:
		return nil
	case RoleUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%d is not a valid role", r))
}

// systemActorID is the reserved identifier recorded as the author of
// automated transitions (webhook settlement, expiry sweeps) that have no
// human caller behind them.
const systemActorID = "00000000-0000-0000-0000-000000000001"

// SystemActorID returns the reserved identifier for automated processes.
func SystemActorID() UUID {
	id, _ := UUIDFromString(systemActorID)
	return id
}

// Actor is the authenticated caller of a command: an id plus a role.
// Commands express their authorization contract through the capability
// predicates below instead of comparing role strings, so the role contract
// is explicit and exhaustively testable.
type Actor struct {
	id   UUID
	role Role
}

// NewActor creates an Actor from the identity the boundary extracted.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the caller's identifier.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the caller's role.
func (a Actor) Role() Role {
	return a.role
}

// Validate checks that the actor carries a usable identity.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}

// CanPlaceOrders reports whether the actor may create and cancel their own orders.
func (a Actor) CanPlaceOrders() bool {
	return a.role == RoleCustomer
}

// CanConfirmOrders reports whether the actor may confirm pending orders.
func (a Actor) CanConfirmOrders() bool {
	return a.role == RoleStaff || a.role == RoleAdmin
}

// CanAssignRiders reports whether the actor may assign riders, manually or by scoring.
func (a Actor) CanAssignRiders() bool {
	return a.role == RoleStaff || a.role == RoleAdmin
}

// CanOperateDeliveries reports whether the actor may execute rider commands
// (start pickup, start delivery, mark delivered, settle cash).
func (a Actor) CanOperateDeliveries() bool {
	return a.role == RoleRider
}

// CanManageRiders reports whether the actor may mutate the rider registry.
func (a Actor) CanManageRiders() bool {
	return a.role == RoleStaff || a.role == RoleAdmin
}

// CanViewAllOrders reports whether the actor sees every order in list queries.
func (a Actor) CanViewAllOrders() bool {
	return a.role == RoleStaff || a.role == RoleAdmin
}

// Owns reports whether the actor is the customer the given order belongs to.
func (a Actor) Owns(customerID UUID) bool {
	return a.id.IsEqual(customerID)
}

// Is reports whether the actor carries the given identifier.
func (a Actor) Is(id UUID) bool {
	return a.id.IsEqual(id)
}
