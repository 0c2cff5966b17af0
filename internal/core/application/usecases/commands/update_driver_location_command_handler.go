package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// UpdateDriverLocationCommandHandler applies a live position fix. It updates
// both the location and the idle timer of the driver.
type UpdateDriverLocationCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewUpdateDriverLocationCommandHandler(uowFactory UoWFactory, clock kernel.Clock) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h UpdateDriverLocationCommandHandler) Handle(ctx context.Context, cmd UpdateDriverLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	d, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if err = d.MoveTo(cmd.Location(), h.clock.Now()); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
