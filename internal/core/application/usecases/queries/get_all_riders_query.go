package queries

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

var ErrGetAllRidersQueryIsNotConstructed = errors.New(
	"GetAllRidersQuery must be created via NewGetAllRidersQuery constructor",
)

// GetAllRidersQuery retrieves the full capacity ledger for operator
// dashboards. Staff only.
type GetAllRidersQuery struct { //nolint:recvcheck //using for validation
	actor kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetAllRidersQuery creates a ledger listing query.
func NewGetAllRidersQuery(actor kernel.Actor) (GetAllRidersQuery, error) {
	q := GetAllRidersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := actor.Validate(); err != nil {
		return GetAllRidersQuery{}, err
	}
	if !actor.CanManageRiders() {
		return GetAllRidersQuery{}, errs.NewForbiddenError("list riders",
			"only staff may read the rider registry")
	}

	q.actor = actor
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllRidersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllRidersQueryIsNotConstructed)
}

// Actor returns the authenticated caller.
func (q GetAllRidersQuery) Actor() kernel.Actor {
	return q.actor
}

// RiderResponse is the read-side projection of one capacity-ledger entry.
type RiderResponse struct {
	ID                 kernel.UUID
	Name               string
	Status             string
	IsAvailable        bool
	MaxCapacityGallons int
	CurrentLoadGallons int
	ActiveOrdersCount  int
}
