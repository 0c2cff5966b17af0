package commands

import (
	"context"

	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// SubmitProofOfDeliveryCommandHandler delivers an order with its proof of delivery.
type SubmitProofOfDeliveryCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewSubmitProofOfDeliveryCommandHandler(uowFactory UoWFactory, clock kernel.Clock) SubmitProofOfDeliveryCommandHandler {
	return SubmitProofOfDeliveryCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h SubmitProofOfDeliveryCommandHandler) Handle(ctx context.Context, cmd SubmitProofOfDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	proof, err := order.NewProofOfDelivery(cmd.Signature(), cmd.PhotoURL(), cmd.Notes())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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
	if err = o.DeliverWithProof(proof, now); err != nil {
		return nil, err
	}

	d, err := closeOrder(ctx, uow, o)
	if err != nil {
		return nil, err
	}

	if err = notifyf(ctx, uow, journal.Admin, journal.Success, "Order delivered!", now,
		"%s delivered order #%s. Proof of delivery recorded.", d.Name(), o.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
