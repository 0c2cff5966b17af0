package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// applyAssignment binds o to d inside uow. It is shared by manual and smart
// assignment so both produce the same side effects:
//   - the order becomes InProgress with d as its driver
//   - the cached routes of d and of a previous driver are cleared
//   - d receives a system message and a success notification
func applyAssignment(ctx context.Context, uow UoW, o *order.Order, d *driver.Driver, at time.Time) error {
	if d.AccountStatus() != driver.AccountApproved {
		return errs.NewInvalidTransitionErrorWithReason(
			"order", o.Status().String(), order.InProgress.String(),
			fmt.Sprintf("driver %s account is %s", d.ID(), d.AccountStatus()))
	}

	previous := o.DriverID()
	if err := o.Assign(d.ID()); err != nil {
		return err
	}

	driverRepo := uow.DriverRepository()
	if previous != nil && *previous != d.ID() {
		if err := clearRoute(ctx, driverRepo, *previous); err != nil {
			return err
		}
	}

	d.ClearRoute()
	if err := driverRepo.Update(ctx, d); err != nil {
		return err
	}
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err := sendSystemMessage(ctx, uow, d.ID(), fmt.Sprintf(assignedMessageFormat, o.ID()), at); err != nil {
		return err
	}
	return notifyf(ctx, uow, d.ID(), journal.Success, "New order assigned", at,
		"You were assigned order #%s for %s.", o.ID(), o.CustomerName())
}

// clearRoute drops the cached route of a driver whose active orders changed.
// A driver that no longer exists has nothing to clear.
func clearRoute(ctx context.Context, repo ports.DriverRepository, driverID string) error {
	d, err := repo.Get(ctx, driverID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	d.ClearRoute()
	return repo.Update(ctx, d)
}
