package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

// OptimizeRouteCommandHandler runs the route sequencer from the driver's
// current position over its InProgress orders. The waypoints become the
// driver's cached route and the orders are listed in visiting order.
//
// Example:
//
//	cmd, _ := NewOptimizeRouteCommand("D001")
//	route, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d stops, %.1f km\n", len(route.Orders), route.TotalKm)
type OptimizeRouteCommandHandler struct {
	uowFactory UoWFactory
	sequencer  services.RouteSequencer
	clock      kernel.Clock
}

func NewOptimizeRouteCommandHandler(uowFactory UoWFactory, clock kernel.Clock) OptimizeRouteCommandHandler {
	return OptimizeRouteCommandHandler{
		uowFactory: uowFactory,
		sequencer:  services.NewRouteSequencer(),
		clock:      clock,
	}
}

func (h OptimizeRouteCommandHandler) Handle(ctx context.Context, cmd OptimizeRouteCommand) (services.SequencedRoute, error) {
	if err := cmd.Validate(); err != nil {
		return services.SequencedRoute{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.SequencedRoute{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	orderRepo := uow.OrderRepository()

	d, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return services.SequencedRoute{}, err
	}

	active, err := orderRepo.GetActiveByDriver(ctx, d.ID())
	if err != nil {
		return services.SequencedRoute{}, err
	}

	route, err := h.sequencer.Sequence(d.Location(), active)
	if err != nil {
		return services.SequencedRoute{}, err
	}

	d.SetRoute(route.Waypoints)
	if err = driverRepo.Update(ctx, d); err != nil {
		return services.SequencedRoute{}, err
	}

	ordered := make([]string, 0, len(route.Orders))
	for _, o := range route.Orders {
		ordered = append(ordered, o.ID())
	}
	if err = orderRepo.Resequence(ctx, d.ID(), ordered); err != nil {
		return services.SequencedRoute{}, err
	}

	if err = sendSystemMessage(ctx, uow, d.ID(), routeOptimizedMessage, h.clock.Now()); err != nil {
		return services.SequencedRoute{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.SequencedRoute{}, err
	}

	return route, nil
}
