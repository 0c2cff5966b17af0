package commands

import (
	"context"

	"dispatch/internal/pkg/errs"
)

type MarkNotificationsReadCommandHandler struct {
	uowFactory UoWFactory
}

func NewMarkNotificationsReadCommandHandler(uowFactory UoWFactory) MarkNotificationsReadCommandHandler {
	return MarkNotificationsReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns how many notifications changed from unread to read.
func (h MarkNotificationsReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationsReadCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	journalRepo := uow.JournalRepository()
	list, err := journalRepo.GetNotifications(ctx, cmd.Recipient())
	if err != nil {
		return 0, err
	}

	target := cmd.NotificationID()
	found := target == nil
	marked := 0
	for _, n := range list {
		if target != nil && !n.ID().IsEqual(*target) {
			continue
		}
		found = true
		if !n.MarkRead() {
			continue
		}
		if err = journalRepo.UpdateNotification(ctx, n); err != nil {
			return 0, err
		}
		marked++
	}
	if !found {
		return 0, errs.NewObjectNotFoundError("notification", target.String())
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return marked, nil
}
