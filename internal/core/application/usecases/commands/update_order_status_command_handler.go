package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler records the outcome reported for an order.
// The assigned driver loses its cached route and the admin desk is notified.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory, clock kernel.Clock) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	switch cmd.Status() {
	case order.Delivered:
		err = o.Deliver(now)
	case order.Failed:
		err = o.Fail()
	default:
		err = errs.NewInvalidTransitionErrorWithReason("order", o.Status().String(), cmd.Status().String(),
			"only Delivered or Failed can be reported")
	}
	if err != nil {
		return nil, err
	}

	d, err := closeOrder(ctx, uow, o)
	if err != nil {
		return nil, err
	}

	if err = notifyf(ctx, uow, journal.Admin, journal.Info, "Status update", now,
		"Driver %s updated order #%s to: %s.", d.Name(), o.ID(), o.Status()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// closeOrder persists a finished order and clears the route of its driver.
func closeOrder(ctx context.Context, uow UoW, o *order.Order) (*driver.Driver, error) {
	driverID := o.DriverID()
	if driverID == nil {
		return nil, errs.NewInvalidTransitionErrorWithReason("order", o.Status().String(), o.Status().String(),
			"order has no assigned driver")
	}

	d, err := uow.DriverRepository().Get(ctx, *driverID)
	if err != nil {
		return nil, err
	}

	d.ClearRoute()
	if err = uow.DriverRepository().Update(ctx, d); err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	return d, nil
}
