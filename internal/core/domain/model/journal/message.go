package journal

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrMessageNeedsAdmin is returned when neither or both sides of a message are the admin desk.
var ErrMessageNeedsAdmin = errs.NewValueIsInvalidErrorWithCause(
	"message parties", errors.New("exactly one side must be the admin"))

// Message is one line of the conversation between the admin desk and a driver.
type Message struct {
	id         kernel.UUID
	senderID   string
	receiverID string
	text       string
	timestamp  time.Time
}

func NewMessage(senderID, receiverID, text string, at time.Time) (*Message, error) {
	senderID = strings.TrimSpace(senderID)
	receiverID = strings.TrimSpace(receiverID)
	text = strings.TrimSpace(text)

	var errList []error
	if senderID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("sender id"))
	}
	if receiverID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("receiver id"))
	}
	if text == "" {
		errList = append(errList, errs.NewValueIsRequiredError("text"))
	}
	if senderID != "" && receiverID != "" && (senderID == Admin) == (receiverID == Admin) {
		errList = append(errList, ErrMessageNeedsAdmin)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Message{
		id:         kernel.NewUUID(),
		senderID:   senderID,
		receiverID: receiverID,
		text:       text,
		timestamp:  at,
	}, nil
}

func (m *Message) ID() kernel.UUID {
	return m.id
}

func (m *Message) SenderID() string {
	return m.senderID
}

func (m *Message) ReceiverID() string {
	return m.receiverID
}

func (m *Message) Text() string {
	return m.text
}

func (m *Message) Timestamp() time.Time {
	return m.timestamp
}

// DriverID returns the non-admin party of the conversation.
func (m *Message) DriverID() string {
	if m.senderID == Admin {
		return m.receiverID
	}
	return m.senderID
}
