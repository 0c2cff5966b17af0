package journal

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// AuditAction names an administrative event in a driver's account history.
type AuditAction string

const (
	Registered AuditAction = "Registered"
	Approved   AuditAction = "Approved"
	Rejected   AuditAction = "Rejected"
	Deleted    AuditAction = "Deleted"
)

func (a AuditAction) Validate() error {
	switch a {
	case Registered, Approved, Rejected, Deleted:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("audit action", fmt.Errorf("%q is not a valid action", string(a)))
	}
}

// AuditLog records an account lifecycle event. Entries outlive deleted drivers.
type AuditLog struct {
	id        kernel.UUID
	driverID  string
	action    AuditAction
	timestamp time.Time
}

func NewAuditLog(driverID string, action AuditAction, at time.Time) (*AuditLog, error) {
	if driverID == "" {
		return nil, errs.NewValueIsRequiredError("driver id")
	}
	if err := action.Validate(); err != nil {
		return nil, err
	}
	return &AuditLog{id: kernel.NewUUID(), driverID: driverID, action: action, timestamp: at}, nil
}

func (l *AuditLog) ID() kernel.UUID      { return l.id }
func (l *AuditLog) DriverID() string     { return l.driverID }
func (l *AuditLog) Action() AuditAction  { return l.action }
func (l *AuditLog) Timestamp() time.Time { return l.timestamp }

// StatusLog records a change of a driver's operational status.
type StatusLog struct {
	id        kernel.UUID
	driverID  string
	status    driver.Status
	timestamp time.Time
}

func NewStatusLog(driverID string, status driver.Status, at time.Time) (*StatusLog, error) {
	if driverID == "" {
		return nil, errs.NewValueIsRequiredError("driver id")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return &StatusLog{id: kernel.NewUUID(), driverID: driverID, status: status, timestamp: at}, nil
}

func (l *StatusLog) ID() kernel.UUID       { return l.id }
func (l *StatusLog) DriverID() string      { return l.driverID }
func (l *StatusLog) Status() driver.Status { return l.status }
func (l *StatusLog) Timestamp() time.Time  { return l.timestamp }
