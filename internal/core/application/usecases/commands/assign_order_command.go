package commands

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrAssignOrderCommandIsNotConstructed = errors.New(
		"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
	)
	ErrOrderIDIsRequired  = errs.NewValueIsRequiredError("order id")
	ErrDriverIDIsRequired = errs.NewValueIsRequiredError("driver id")
)

// AssignOrderCommand is the manual dispatch of one order to one driver.
// Reassigning an InProgress order to another driver is allowed.
//
// Example:
//
//	cmd, _ := NewAssignOrderCommand("ORD-A1B2C", "D001")
//	handler := NewAssignOrderCommandHandler(uowFactory, clock)
//	o, err := handler.Handle(ctx, cmd)
type AssignOrderCommand struct {
	orderID  string
	driverID string

	guard guard.ConstructorGuard
}

func NewAssignOrderCommand(orderID, driverID string) (AssignOrderCommand, error) {
	cmd := AssignOrderCommand{
		orderID:  strings.TrimSpace(orderID),
		driverID: strings.TrimSpace(driverID),
		guard:    guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.orderID == "" {
		errList = append(errList, ErrOrderIDIsRequired)
	}
	if cmd.driverID == "" {
		errList = append(errList, ErrDriverIDIsRequired)
	}
	if err := errors.Join(errList...); err != nil {
		return AssignOrderCommand{}, err
	}

	return cmd, nil
}

func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

func (c AssignOrderCommand) OrderID() string {
	return c.orderID
}

func (c AssignOrderCommand) DriverID() string {
	return c.driverID
}
