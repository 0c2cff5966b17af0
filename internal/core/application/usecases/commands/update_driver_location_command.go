package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand carries one position fix from a driver's device.
type UpdateDriverLocationCommand struct {
	driverID string
	location kernel.Location

	guard guard.ConstructorGuard
}

func NewUpdateDriverLocationCommand(driverID string, lat, lng float64) (UpdateDriverLocationCommand, error) {
	cmd := UpdateDriverLocationCommand{
		driverID: strings.TrimSpace(driverID),
		guard:    guard.NewConstructorGuard(),
	}

	location, err := kernel.NewLocation(lat, lng)
	var errList []error
	if cmd.driverID == "" {
		errList = append(errList, ErrDriverIDIsRequired)
	}
	errList = append(errList, err)
	if err = errors.Join(errList...); err != nil {
		return UpdateDriverLocationCommand{}, err
	}

	cmd.location = location
	return cmd, nil
}

func (c UpdateDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverLocationCommandIsNotConstructed)
}

func (c UpdateDriverLocationCommand) DriverID() string {
	return c.driverID
}

func (c UpdateDriverLocationCommand) Location() kernel.Location {
	return c.location
}
