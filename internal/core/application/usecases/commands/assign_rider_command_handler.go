package commands

import (
	"context"
	"time"

	"refill/internal/core/domain/model/order"
	"refill/internal/pkg/errs"
)

// AssignRiderCommandHandler handles manual rider assignment. Unlike the
// scoring path it performs no capacity validation or reservation; it only
// verifies the rider exists before writing the assignment.
type AssignRiderCommandHandler struct {
	uowFactory OrderRiderUoWFactory
}

// NewAssignRiderCommandHandler creates a handler for manual assignment.
func NewAssignRiderCommandHandler(uowFactory OrderRiderUoWFactory) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the manual assignment command.
func (h AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().CanAssignRiders() {
		return errs.NewForbiddenError("assign rider",
			"only staff may assign riders")
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

	// No capacity check: the rider only has to exist.
	if _, err = uow.RiderRepository().Get(ctx, cmd.RiderID()); err != nil {
		return err
	}

	if err = aggregate.Assign(cmd.RiderID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	assignment, err := order.NewAssignment(
		aggregate.ID(), cmd.RiderID(), cmd.Actor().ID(), time.Now())
	if err != nil {
		return err
	}
	if err = orderRepo.AddAssignment(ctx, assignment); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
