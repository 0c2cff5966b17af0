package commands

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/guard"
)

var ErrOptimizeRouteCommandIsNotConstructed = errors.New(
	"OptimizeRouteCommand must be created via NewOptimizeRouteCommand constructor",
)

// OptimizeRouteCommand sequences the active deliveries of one driver.
type OptimizeRouteCommand struct {
	driverID string

	guard guard.ConstructorGuard
}

func NewOptimizeRouteCommand(driverID string) (OptimizeRouteCommand, error) {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return OptimizeRouteCommand{}, ErrDriverIDIsRequired
	}
	return OptimizeRouteCommand{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c OptimizeRouteCommand) Validate() error {
	return c.guard.Validate(ErrOptimizeRouteCommandIsNotConstructed)
}

func (c OptimizeRouteCommand) DriverID() string {
	return c.driverID
}
