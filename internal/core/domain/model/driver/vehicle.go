package driver

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Vehicle describes what a driver rides. Plate may be "N/A" for bicycles.
type Vehicle struct {
	kind       string
	plate      string
	capacityKg int
	fuel       Fuel
}

func NewVehicle(kind, plate string, capacityKg int, fuel Fuel) (Vehicle, error) {
	v := Vehicle{
		kind:  strings.TrimSpace(kind),
		plate: strings.TrimSpace(plate),
		fuel:  fuel,
	}

	var errList []error
	if v.kind == "" {
		errList = append(errList, errs.NewValueIsRequiredError("vehicle type"))
	}
	if v.plate == "" {
		errList = append(errList, errs.NewValueIsRequiredError("license plate"))
	}
	if capacityKg <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"vehicle capacity", fmt.Errorf("%d is not greater than 0", capacityKg)))
	}
	errList = append(errList, fuel.Validate())
	if err := errors.Join(errList...); err != nil {
		return Vehicle{}, err
	}

	v.capacityKg = capacityKg
	return v, nil
}

func (v Vehicle) Type() string {
	return v.kind
}

func (v Vehicle) Plate() string {
	return v.plate
}

func (v Vehicle) CapacityKg() int {
	return v.capacityKg
}

func (v Vehicle) Fuel() Fuel {
	return v.fuel
}

func (v Vehicle) validate() error {
	if v.kind == "" {
		return errs.NewValueIsRequiredError("vehicle")
	}
	return nil
}
