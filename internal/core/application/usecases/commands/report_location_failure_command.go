package commands

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrReportLocationFailureCommandIsNotConstructed = errors.New(
	"ReportLocationFailureCommand must be created via NewReportLocationFailureCommand constructor",
)

// LocationFailure is the kind of error a device reports for its position source.
type LocationFailure string

const (
	LocationPermissionDenied LocationFailure = "permission_denied"
	LocationUnavailable      LocationFailure = "unavailable"
	LocationTimeout          LocationFailure = "timeout"
)

func (f LocationFailure) Validate() error {
	switch f {
	case LocationPermissionDenied, LocationUnavailable, LocationTimeout:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("location failure", fmt.Errorf("%q is not a valid kind", string(f)))
	}
}

// Err classifies the failure. Timeouts are transient and map to nil.
func (f LocationFailure) Err() error {
	switch f {
	case LocationPermissionDenied:
		return errs.ErrPermissionDenied
	case LocationUnavailable:
		return errs.ErrCapabilityUnavailable
	default:
		return nil
	}
}

// IsPermanent reports whether the device will not deliver positions again
// during this session.
func (f LocationFailure) IsPermanent() bool {
	return f.Err() != nil
}

// ReportLocationFailureCommand records that a driver's device cannot deliver positions.
type ReportLocationFailureCommand struct {
	driverID string
	failure  LocationFailure

	guard guard.ConstructorGuard
}

func NewReportLocationFailureCommand(driverID string, failure LocationFailure) (ReportLocationFailureCommand, error) {
	cmd := ReportLocationFailureCommand{
		driverID: strings.TrimSpace(driverID),
		failure:  failure,
		guard:    guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.driverID == "" {
		errList = append(errList, ErrDriverIDIsRequired)
	}
	errList = append(errList, failure.Validate())
	if err := errors.Join(errList...); err != nil {
		return ReportLocationFailureCommand{}, err
	}

	return cmd, nil
}

func (c ReportLocationFailureCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationFailureCommandIsNotConstructed)
}

func (c ReportLocationFailureCommand) DriverID() string {
	return c.driverID
}

func (c ReportLocationFailureCommand) Failure() LocationFailure {
	return c.failure
}
