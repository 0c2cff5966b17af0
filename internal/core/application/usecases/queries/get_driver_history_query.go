package queries

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/pkg/guard"
)

var ErrGetDriverHistoryQueryIsNotConstructed = errors.New(
	"GetDriverHistoryQuery must be created via NewGetDriverHistoryQuery constructor",
)

// GetDriverHistoryQuery reads the account audit trail and the status changes of a driver.
type GetDriverHistoryQuery struct {
	driverID string

	guard guard.ConstructorGuard
}

func NewGetDriverHistoryQuery(driverID string) (GetDriverHistoryQuery, error) {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return GetDriverHistoryQuery{}, ErrDriverIDIsRequired
	}
	return GetDriverHistoryQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverHistoryQueryIsNotConstructed)
}

func (q GetDriverHistoryQuery) DriverID() string {
	return q.driverID
}

type AuditLogView struct {
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

type StatusLogView struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// GetDriverHistoryQueryResponse lists both logs newest first.
type GetDriverHistoryQueryResponse struct {
	DriverID   string          `json:"driverId"`
	AuditLogs  []AuditLogView  `json:"auditLogs"`
	StatusLogs []StatusLogView `json:"statusLogs"`
}
