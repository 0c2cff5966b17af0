package memory

import (
	"context"

	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/pkg/errs"
)

type journalRepository struct {
	uow *UnitOfWork
}

func (r journalRepository) AddNotification(ctx context.Context, n *journal.Notification) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	if n == nil {
		return errs.NewValueIsRequiredError("notification")
	}
	r.uow.notifications = append(r.uow.notifications, n.Clone())
	return nil
}

// UpdateNotification only persists the read flag. Other fields are immutable.
func (r journalRepository) UpdateNotification(ctx context.Context, n *journal.Notification) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	if n == nil {
		return errs.NewValueIsRequiredError("notification")
	}

	for i, staged := range r.uow.notifications {
		if staged.ID().IsEqual(n.ID()) {
			r.uow.notifications[i] = n.Clone()
			return nil
		}
	}
	for _, committed := range r.uow.store.journal.notifications {
		if committed.ID().IsEqual(n.ID()) {
			r.uow.updatedNotifications[n.ID()] = n.Clone()
			return nil
		}
	}
	return errs.NewObjectNotFoundError("notification", n.ID())
}

func (r journalRepository) GetNotifications(ctx context.Context, recipient string) ([]*journal.Notification, error) {
	if err := r.check(ctx); err != nil {
		return nil, err
	}

	out := make([]*journal.Notification, 0)
	for i := len(r.uow.notifications) - 1; i >= 0; i-- {
		if n := r.uow.notifications[i]; n.Recipient() == recipient {
			out = append(out, n.Clone())
		}
	}
	for _, n := range r.uow.store.journal.notifications {
		if n.Recipient() != recipient {
			continue
		}
		if updated, ok := r.uow.updatedNotifications[n.ID()]; ok {
			n = updated
		}
		out = append(out, n.Clone())
	}
	return out, nil
}

func (r journalRepository) AddMessage(ctx context.Context, m *journal.Message) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	if m == nil {
		return errs.NewValueIsRequiredError("message")
	}
	r.uow.messages = append(r.uow.messages, m)
	return nil
}

func (r journalRepository) AddAuditLog(ctx context.Context, l *journal.AuditLog) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	if l == nil {
		return errs.NewValueIsRequiredError("audit log")
	}
	r.uow.auditLogs = append(r.uow.auditLogs, l)
	return nil
}

func (r journalRepository) AddStatusLog(ctx context.Context, l *journal.StatusLog) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	if l == nil {
		return errs.NewValueIsRequiredError("status log")
	}
	r.uow.statusLogs = append(r.uow.statusLogs, l)
	return nil
}

func (r journalRepository) check(ctx context.Context) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	return ctx.Err()
}

