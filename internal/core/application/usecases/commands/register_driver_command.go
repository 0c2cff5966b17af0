package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// VehicleInput describes the vehicle submitted on registration.
type VehicleInput struct {
	Type       string
	Plate      string
	CapacityKg int
	Fuel       string
}

// RegisterDriverCommand signs up a new driver. The account starts Pending
// and has to be approved before the driver can receive orders.
//
// Example:
//
//	cmd, err := NewRegisterDriverCommand("Carlos Gomez", "carlos@email.com",
//	    VehicleInput{Type: "Moto Honda Wave", Plate: "A123BCC", CapacityKg: 20, Fuel: "Gasoline"}, "")
type RegisterDriverCommand struct {
	name        string
	email       string
	vehicle     driver.Vehicle
	deviceToken string

	guard guard.ConstructorGuard
}

func NewRegisterDriverCommand(name, email string, vehicle VehicleInput, deviceToken string) (RegisterDriverCommand, error) {
	v, err := driver.NewVehicle(vehicle.Type, vehicle.Plate, vehicle.CapacityKg, driver.Fuel(vehicle.Fuel))
	if err != nil {
		return RegisterDriverCommand{}, err
	}

	return RegisterDriverCommand{
		name:        name,
		email:       email,
		vehicle:     v,
		deviceToken: deviceToken,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

func (c RegisterDriverCommand) Name() string {
	return c.name
}

func (c RegisterDriverCommand) Email() string {
	return c.email
}

func (c RegisterDriverCommand) Vehicle() driver.Vehicle {
	return c.vehicle
}

func (c RegisterDriverCommand) DeviceToken() string {
	return c.deviceToken
}
