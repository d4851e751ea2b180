package commands

import (
	"context"

	"refill/internal/pkg/errs"
)

// AutoAssignRiderCommandHandler runs scored dispatch for an already-confirmed
// order. The reservation semantics match confirmation: one conditional write,
// no retry against the next candidate; losing the race surfaces as
// rider.ErrNoAvailableRider and rolls everything back.
type AutoAssignRiderCommandHandler struct {
	uowFactory OrderRiderUoWFactory
}

// NewAutoAssignRiderCommandHandler creates a handler for scored assignment.
func NewAutoAssignRiderCommandHandler(uowFactory OrderRiderUoWFactory) AutoAssignRiderCommandHandler {
	return AutoAssignRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the scored assignment command.
func (h AutoAssignRiderCommandHandler) Handle(ctx context.Context, cmd AutoAssignRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().CanAssignRiders() {
		return errs.NewForbiddenError("auto assign rider",
			"only staff may dispatch riders")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if _, err = dispatchRider(ctx, uow, aggregate, cmd.Actor().ID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
