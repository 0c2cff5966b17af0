package commands

import (
	"context"

	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
)

// ChangeDriverAccountCommandHandler applies account decisions and audits each of them.
//
// Deleting a driver returns its InProgress orders to the Pending pool.
// Delivered and Failed orders keep the driver id for history.
type ChangeDriverAccountCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewChangeDriverAccountCommandHandler(uowFactory UoWFactory, clock kernel.Clock) ChangeDriverAccountCommandHandler {
	return ChangeDriverAccountCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h ChangeDriverAccountCommandHandler) Handle(ctx context.Context, cmd ChangeDriverAccountCommand) error {
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

	var action journal.AuditAction
	switch cmd.Action() {
	case ApproveAccount:
		action = journal.Approved
		if err = d.Approve(); err == nil {
			err = driverRepo.Update(ctx, d)
		}
	case RejectAccount:
		action = journal.Rejected
		if err = d.Reject(); err == nil {
			err = driverRepo.Update(ctx, d)
		}
	case DeleteAccount:
		action = journal.Deleted
		err = h.delete(ctx, uow, d.ID())
	}
	if err != nil {
		return err
	}

	if err = audit(ctx, uow, d.ID(), action, h.clock.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h ChangeDriverAccountCommandHandler) delete(ctx context.Context, uow UoW, driverID string) error {
	orderRepo := uow.OrderRepository()
	active, err := orderRepo.GetActiveByDriver(ctx, driverID)
	if err != nil {
		return err
	}

	for _, o := range active {
		if err = o.Release(); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	return uow.DriverRepository().Delete(ctx, driverID)
}
