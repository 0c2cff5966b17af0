package commands

import (
	"context"

	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
)

// SendMessageCommandHandler appends a message to a driver's conversation.
// The driver must exist when the message is sent.
type SendMessageCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewSendMessageCommandHandler(uowFactory UoWFactory, clock kernel.Clock) SendMessageCommandHandler {
	return SendMessageCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h SendMessageCommandHandler) Handle(ctx context.Context, cmd SendMessageCommand) (*journal.Message, error) {
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

	if _, err := uow.DriverRepository().Get(ctx, cmd.DriverID()); err != nil {
		return nil, err
	}

	m, err := journal.NewMessage(cmd.SenderID(), cmd.ReceiverID(), cmd.Text(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.JournalRepository().AddMessage(ctx, m); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return m, nil
}
