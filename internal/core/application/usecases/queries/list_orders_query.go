package queries

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves orders visible to the caller, newest first.
// Customers get their own orders, riders their assignments, staff everything,
// with an optional status filter.
//
// Example:
//
//	status := order.StatusPending
//	query, _ := NewListOrdersQuery(staff, &status)
//	orders, err := NewListOrdersQueryHandler(db).Handle(ctx, query)
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	actor  kernel.Actor
	status *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a role-scoped listing query. A nil status means
// no filter.
func NewListOrdersQuery(actor kernel.Actor, status *order.Status) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setActor(actor); err != nil {
		return ListOrdersQuery{}, err
	}
	if err := q.setStatus(status); err != nil {
		return ListOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Actor returns the authenticated caller.
func (q ListOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

// Status returns the optional status filter.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

func (q *ListOrdersQuery) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

func (q *ListOrdersQuery) setStatus(status *order.Status) error {
	if status != nil {
		if err := status.Validate(); err != nil {
			return err
		}
	}

	q.status = status
	return nil
}
