package ports

import (
	"context"

	"dispatch/internal/core/domain/model/journal"
)

// JournalRepository appends notifications, messages and logs. Apart from the
// read flag of notifications, entries never change once committed.
type JournalRepository interface {
	AddNotification(ctx context.Context, n *journal.Notification) error
	UpdateNotification(ctx context.Context, n *journal.Notification) error
	// GetNotifications lists the recipient's notifications newest first.
	GetNotifications(ctx context.Context, recipient string) ([]*journal.Notification, error)

	AddMessage(ctx context.Context, m *journal.Message) error
	AddAuditLog(ctx context.Context, l *journal.AuditLog) error
	AddStatusLog(ctx context.Context, l *journal.StatusLog) error
}
