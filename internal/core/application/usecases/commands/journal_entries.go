package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/journal"
)

// Texts of the system messages sent by the dispatch desk.
const (
	assignedMessageFormat = "You have been assigned a new order: #%s."
	routeOptimizedMessage = "Your route has been optimized for efficiency."
)

func notify(
	ctx context.Context,
	uow UoW,
	recipient string,
	level journal.Level,
	title, message string,
	at time.Time,
) error {
	n, err := journal.NewNotification(recipient, level, title, message, at)
	if err != nil {
		return err
	}
	return uow.JournalRepository().AddNotification(ctx, n)
}

func notifyf(
	ctx context.Context,
	uow UoW,
	recipient string,
	level journal.Level,
	title string,
	at time.Time,
	format string,
	args ...any,
) error {
	return notify(ctx, uow, recipient, level, title, fmt.Sprintf(format, args...), at)
}

// sendSystemMessage writes a message from the admin desk to a driver.
func sendSystemMessage(ctx context.Context, uow UoW, driverID, text string, at time.Time) error {
	m, err := journal.NewMessage(journal.Admin, driverID, text, at)
	if err != nil {
		return err
	}
	return uow.JournalRepository().AddMessage(ctx, m)
}

func audit(ctx context.Context, uow UoW, driverID string, action journal.AuditAction, at time.Time) error {
	l, err := journal.NewAuditLog(driverID, action, at)
	if err != nil {
		return err
	}
	return uow.JournalRepository().AddAuditLog(ctx, l)
}
