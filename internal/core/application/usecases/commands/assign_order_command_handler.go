package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// AssignOrderCommandHandler dispatches an order to a driver chosen by the operator.
//
// Example:
//
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order or driver
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // terminal order or driver account not approved
//	}
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewAssignOrderCommandHandler(uowFactory UoWFactory, clock kernel.Clock) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) (*order.Order, error) {
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

	d, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	if err = applyAssignment(ctx, uow, o, d, h.clock.Now()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
