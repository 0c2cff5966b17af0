package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
)

// RegisterDriverCommandHandler creates Pending, Offline drivers at the city
// centre, audits the registration and tells the admin desk.
type RegisterDriverCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewRegisterDriverCommandHandler(uowFactory UoWFactory, clock kernel.Clock) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h RegisterDriverCommandHandler) Handle(ctx context.Context, cmd RegisterDriverCommand) (*driver.Driver, error) {
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
	id, err := uniqueID(ctx, driver.NewID, func(ctx context.Context, id string) error {
		_, getErr := driverRepo.Get(ctx, id)
		return getErr
	})
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	d, err := driver.NewDriver(id, cmd.Name(), cmd.Email(), cmd.Vehicle(), cmd.DeviceToken(), now)
	if err != nil {
		return nil, err
	}

	if err = driverRepo.Add(ctx, d); err != nil {
		return nil, err
	}

	if err = audit(ctx, uow, d.ID(), journal.Registered, now); err != nil {
		return nil, err
	}

	if err = notifyf(ctx, uow, journal.Admin, journal.Info, "New driver registration", now,
		"%s has registered and is pending approval.", d.Name()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
