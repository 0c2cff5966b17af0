package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Admin is the recipient and conversation party that stands for the dispatch desk.
const Admin = "admin"

// Level classifies a notification for display.
type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
)

func (l Level) Validate() error {
	switch l {
	case Success, Info, Warning:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("level", fmt.Errorf("%q is not a valid level", string(l)))
	}
}

// Notification is an alert addressed to the admin desk or to one driver.
// Only the read flag changes after creation.
type Notification struct {
	id        kernel.UUID
	recipient string
	level     Level
	title     string
	message   string
	read      bool
	createdAt time.Time
}

func NewNotification(recipient string, level Level, title, message string, at time.Time) (*Notification, error) {
	n := &Notification{
		id:        kernel.NewUUID(),
		recipient: strings.TrimSpace(recipient),
		level:     level,
		title:     strings.TrimSpace(title),
		message:   strings.TrimSpace(message),
		createdAt: at,
	}

	var errList []error
	if n.recipient == "" {
		errList = append(errList, errs.NewValueIsRequiredError("recipient"))
	}
	if n.title == "" {
		errList = append(errList, errs.NewValueIsRequiredError("title"))
	}
	errList = append(errList, level.Validate())
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Notification) ID() kernel.UUID {
	return n.id
}

// Recipient is Admin or a driver id.
func (n *Notification) Recipient() string {
	return n.recipient
}

func (n *Notification) IsForAdmin() bool {
	return n.recipient == Admin
}

func (n *Notification) Level() Level {
	return n.level
}

func (n *Notification) Title() string {
	return n.title
}

func (n *Notification) Message() string {
	return n.message
}

func (n *Notification) IsRead() bool {
	return n.read
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead reports whether the flag flipped.
func (n *Notification) MarkRead() bool {
	if n.read {
		return false
	}
	n.read = true
	return true
}

func (n *Notification) Clone() *Notification {
	c := *n
	return &c
}
