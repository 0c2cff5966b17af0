package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSendMessageCommandIsNotConstructed = errors.New(
	"SendMessageCommand must be created via NewSendMessageCommand constructor",
)

// SendMessageCommand adds a line to the conversation between the admin desk and a driver.
type SendMessageCommand struct {
	senderID   string
	receiverID string
	text       string

	guard guard.ConstructorGuard
}

// NewSendMessageCommand requires exactly one side to be journal.Admin.
func NewSendMessageCommand(senderID, receiverID, text string) (SendMessageCommand, error) {
	cmd := SendMessageCommand{
		senderID:   strings.TrimSpace(senderID),
		receiverID: strings.TrimSpace(receiverID),
		text:       strings.TrimSpace(text),
		guard:      guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.senderID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("sender id"))
	}
	if cmd.receiverID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("receiver id"))
	}
	if cmd.text == "" {
		errList = append(errList, errs.NewValueIsRequiredError("text"))
	}
	if cmd.senderID != "" && cmd.receiverID != "" && (cmd.senderID == journal.Admin) == (cmd.receiverID == journal.Admin) {
		errList = append(errList, journal.ErrMessageNeedsAdmin)
	}
	if err := errors.Join(errList...); err != nil {
		return SendMessageCommand{}, err
	}

	return cmd, nil
}

func (c SendMessageCommand) Validate() error {
	return c.guard.Validate(ErrSendMessageCommandIsNotConstructed)
}

func (c SendMessageCommand) SenderID() string {
	return c.senderID
}

func (c SendMessageCommand) ReceiverID() string {
	return c.receiverID
}

func (c SendMessageCommand) Text() string {
	return c.text
}

// DriverID is the non-admin side of the conversation.
func (c SendMessageCommand) DriverID() string {
	if c.senderID == journal.Admin {
		return c.receiverID
	}
	return c.senderID
}
