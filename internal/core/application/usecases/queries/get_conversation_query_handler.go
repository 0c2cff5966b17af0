package queries

import (
	"context"

	"dispatch/internal/core/ports"
)

type GetConversationQueryHandler struct {
	reader ports.FleetReader
}

func NewGetConversationQueryHandler(reader ports.FleetReader) GetConversationQueryHandler {
	return GetConversationQueryHandler{reader: reader}
}

// Handle does not require the driver to exist: threads outlive deleted drivers.
func (h GetConversationQueryHandler) Handle(
	ctx context.Context,
	query GetConversationQuery,
) (GetConversationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetConversationQueryResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return GetConversationQueryResponse{}, err
	}

	resp := GetConversationQueryResponse{
		DriverID: query.DriverID(),
		Messages: make([]MessageView, 0),
	}
	for _, m := range h.reader.Snapshot().Messages {
		if m.DriverID() == query.DriverID() {
			resp.Messages = append(resp.Messages, NewMessageView(m))
		}
	}
	return resp, nil
}
