package commands

import (
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/pkg/errs"
)

// assertAssignedRider enforces the delivery-command contract: the caller must
// be a rider and must be the rider currently assigned to the order. Every
// delivery command re-fetches the order and re-checks this against fresh
// state before mutating.
func assertAssignedRider(actor kernel.Actor, aggregate *order.Order, operation string) error {
	if !actor.CanOperateDeliveries() {
		return errs.NewForbiddenError(operation,
			"only riders may execute delivery commands")
	}

	assigned := aggregate.AssignedRider()
	if assigned == nil || !actor.Is(*assigned) {
		return errs.NewForbiddenError(operation,
			"order is assigned to another rider")
	}

	return nil
}
