package commands

import (
	"context"

	"refill/internal/core/domain/model/rider"
	"refill/internal/pkg/errs"
)

// CreateRiderCommandHandler registers new delivery agents in the capacity
// ledger. New riders start active, available, and empty.
type CreateRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewCreateRiderCommandHandler creates a handler for rider registration.
func NewCreateRiderCommandHandler(uowFactory RiderUoWFactory) CreateRiderCommandHandler {
	return CreateRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rider registration command.
func (h CreateRiderCommandHandler) Handle(ctx context.Context, cmd CreateRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().CanManageRiders() {
		return errs.NewForbiddenError("create rider",
			"only staff may manage the rider registry")
	}

	aggregate, err := rider.NewRider(cmd.RiderID(), cmd.Name(), cmd.MaxCapacityGallons())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RiderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
