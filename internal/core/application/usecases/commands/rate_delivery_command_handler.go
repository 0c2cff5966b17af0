package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

type RateDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

func NewRateDeliveryCommandHandler(uowFactory UoWFactory) RateDeliveryCommandHandler {
	return RateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle rates a Delivered order. Other statuses return an InvalidTransitionError.
func (h RateDeliveryCommandHandler) Handle(ctx context.Context, cmd RateDeliveryCommand) (*order.Order, error) {
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

	if err = o.Rate(cmd.Rating()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
