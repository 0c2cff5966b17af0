package queries

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetNotificationsQueryIsNotConstructed = errors.New(
		"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
	)
	ErrRecipientIsRequired = errs.NewValueIsRequiredError("recipient")
)

// GetNotificationsQuery lists the notifications of one recipient: "admin" or a driver id.
type GetNotificationsQuery struct {
	recipient  string
	unreadOnly bool

	guard guard.ConstructorGuard
}

func NewGetNotificationsQuery(recipient string, unreadOnly bool) (GetNotificationsQuery, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return GetNotificationsQuery{}, ErrRecipientIsRequired
	}
	return GetNotificationsQuery{
		recipient:  recipient,
		unreadOnly: unreadOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

func (q GetNotificationsQuery) Recipient() string {
	return q.recipient
}

func (q GetNotificationsQuery) UnreadOnly() bool {
	return q.unreadOnly
}

// GetNotificationsQueryResponse holds notifications newest first.
type GetNotificationsQueryResponse struct {
	Notifications []NotificationView `json:"notifications"`
	Unread        int                `json:"unread"`
}
