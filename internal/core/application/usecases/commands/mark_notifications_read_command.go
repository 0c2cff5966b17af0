package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrMarkNotificationsReadCommandIsNotConstructed = errors.New(
	"MarkNotificationsReadCommand must be created via NewMarkNotificationsReadCommand constructor",
)

// MarkNotificationsReadCommand marks one notification, or every unread
// notification of the recipient when no id is given.
type MarkNotificationsReadCommand struct {
	recipient      string
	notificationID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkNotificationsReadCommand(recipient string, notificationID *kernel.UUID) (MarkNotificationsReadCommand, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return MarkNotificationsReadCommand{}, errs.NewValueIsRequiredError("recipient")
	}

	cmd := MarkNotificationsReadCommand{
		recipient: recipient,
		guard:     guard.NewConstructorGuard(),
	}
	if notificationID != nil {
		if err := notificationID.Validate(); err != nil {
			return MarkNotificationsReadCommand{}, err
		}
		id := *notificationID
		cmd.notificationID = &id
	}

	return cmd, nil
}

func (c MarkNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationsReadCommandIsNotConstructed)
}

func (c MarkNotificationsReadCommand) Recipient() string {
	return c.recipient
}

// NotificationID is nil when every notification of the recipient is targeted.
func (c MarkNotificationsReadCommand) NotificationID() *kernel.UUID {
	if c.notificationID == nil {
		return nil
	}
	id := *c.notificationID
	return &id
}
