package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/pkg/guard"
)

var ErrChangeDriverStatusCommandIsNotConstructed = errors.New(
	"ChangeDriverStatusCommand must be created via NewChangeDriverStatusCommand constructor",
)

// ChangeDriverStatusCommand toggles a driver between Online, OnBreak and Offline.
type ChangeDriverStatusCommand struct {
	driverID string
	status   driver.Status

	guard guard.ConstructorGuard
}

func NewChangeDriverStatusCommand(driverID string, status driver.Status) (ChangeDriverStatusCommand, error) {
	cmd := ChangeDriverStatusCommand{
		driverID: strings.TrimSpace(driverID),
		status:   status,
		guard:    guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.driverID == "" {
		errList = append(errList, ErrDriverIDIsRequired)
	}
	errList = append(errList, status.Validate())
	if err := errors.Join(errList...); err != nil {
		return ChangeDriverStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeDriverStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeDriverStatusCommandIsNotConstructed)
}

func (c ChangeDriverStatusCommand) DriverID() string {
	return c.driverID
}

func (c ChangeDriverStatusCommand) Status() driver.Status {
	return c.status
}
