package queries

import (
	"context"

	"dispatch/internal/core/ports"
)

type GetNotificationsQueryHandler struct {
	reader ports.FleetReader
}

func NewGetNotificationsQueryHandler(reader ports.FleetReader) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{reader: reader}
}

// Handle returns the recipient's notifications and the number still unread.
// Unread counts all unread entries even when the list is filtered.
func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsQuery,
) (GetNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetNotificationsQueryResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return GetNotificationsQueryResponse{}, err
	}

	resp := GetNotificationsQueryResponse{Notifications: make([]NotificationView, 0)}
	for _, n := range h.reader.Snapshot().Notifications {
		if n.Recipient() != query.Recipient() {
			continue
		}
		if !n.IsRead() {
			resp.Unread++
		} else if query.UnreadOnly() {
			continue
		}
		resp.Notifications = append(resp.Notifications, NewNotificationView(n))
	}
	return resp, nil
}
