package ports

import (
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/order"
)

// FleetSnapshot is a consistent deep copy of the whole fleet state.
type FleetSnapshot struct {
	Drivers       []*driver.Driver
	Orders        []*order.Order
	Notifications []*journal.Notification
	Messages      []*journal.Message
	AuditLogs     []*journal.AuditLog
	StatusLogs    []*journal.StatusLog
}

// FleetReader exposes committed state to queries without a transaction.
type FleetReader interface {
	Snapshot() FleetSnapshot
}

// DeviceTokenLookup resolves a driver's push registration token.
type DeviceTokenLookup interface {
	DeviceToken(driverID string) (string, bool)
}

// LiveTracking tells the telemetry simulator which drivers report real positions.
type LiveTracking interface {
	IsLive(driverID string) bool
}
