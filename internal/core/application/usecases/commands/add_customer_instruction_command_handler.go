package commands

import (
	"context"

	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// AddCustomerInstructionCommandHandler stores the instruction and, when the
// order already has a driver, forwards it to that driver.
type AddCustomerInstructionCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewAddCustomerInstructionCommandHandler(uowFactory UoWFactory, clock kernel.Clock) AddCustomerInstructionCommandHandler {
	return AddCustomerInstructionCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h AddCustomerInstructionCommandHandler) Handle(ctx context.Context, cmd AddCustomerInstructionCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.SetInstructions(cmd.Text()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if driverID := o.DriverID(); driverID != nil {
		if err = notifyf(ctx, uow, *driverID, journal.Info, "New customer instruction", h.clock.Now(),
			"Order #%s: %q", o.ID(), o.Instructions()); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
