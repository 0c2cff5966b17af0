package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
)

// ChangeDriverStatusCommandHandler changes the operational status of a driver
// and appends a status log entry. Setting the current status again is a no-op.
type ChangeDriverStatusCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewChangeDriverStatusCommandHandler(uowFactory UoWFactory, clock kernel.Clock) ChangeDriverStatusCommandHandler {
	return ChangeDriverStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h ChangeDriverStatusCommandHandler) Handle(ctx context.Context, cmd ChangeDriverStatusCommand) (*driver.Driver, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	d, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	changed, err := d.ChangeStatus(cmd.Status(), now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return d, nil
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	statusLog, err := journal.NewStatusLog(d.ID(), d.Status(), now)
	if err != nil {
		return nil, err
	}
	if err = uow.JournalRepository().AddStatusLog(ctx, statusLog); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
