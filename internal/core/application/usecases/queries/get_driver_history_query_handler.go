package queries

import (
	"context"

	"dispatch/internal/core/ports"
)

type GetDriverHistoryQueryHandler struct {
	reader ports.FleetReader
}

func NewGetDriverHistoryQueryHandler(reader ports.FleetReader) GetDriverHistoryQueryHandler {
	return GetDriverHistoryQueryHandler{reader: reader}
}

// Handle keeps working after the driver was deleted; the Deleted audit entry
// is part of the history.
func (h GetDriverHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetDriverHistoryQuery,
) (GetDriverHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDriverHistoryQueryResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return GetDriverHistoryQueryResponse{}, err
	}

	snap := h.reader.Snapshot()
	resp := GetDriverHistoryQueryResponse{
		DriverID:   query.DriverID(),
		AuditLogs:  make([]AuditLogView, 0),
		StatusLogs: make([]StatusLogView, 0),
	}
	for _, l := range snap.AuditLogs {
		if l.DriverID() == query.DriverID() {
			resp.AuditLogs = append(resp.AuditLogs, AuditLogView{Action: string(l.Action()), Timestamp: l.Timestamp()})
		}
	}
	for _, l := range snap.StatusLogs {
		if l.DriverID() == query.DriverID() {
			resp.StatusLogs = append(resp.StatusLogs, StatusLogView{Status: l.Status().String(), Timestamp: l.Timestamp()})
		}
	}
	return resp, nil
}
