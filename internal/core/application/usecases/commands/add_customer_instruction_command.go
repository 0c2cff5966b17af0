package commands

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAddCustomerInstructionCommandIsNotConstructed = errors.New(
	"AddCustomerInstructionCommand must be created via NewAddCustomerInstructionCommand constructor",
)

// AddCustomerInstructionCommand attaches a free-text delivery instruction to an open order.
type AddCustomerInstructionCommand struct {
	orderID string
	text    string

	guard guard.ConstructorGuard
}

func NewAddCustomerInstructionCommand(orderID, text string) (AddCustomerInstructionCommand, error) {
	cmd := AddCustomerInstructionCommand{
		orderID: strings.TrimSpace(orderID),
		text:    strings.TrimSpace(text),
		guard:   guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.orderID == "" {
		errList = append(errList, ErrOrderIDIsRequired)
	}
	if cmd.text == "" {
		errList = append(errList, errs.NewValueIsRequiredError("instructions"))
	}
	if err := errors.Join(errList...); err != nil {
		return AddCustomerInstructionCommand{}, err
	}

	return cmd, nil
}

func (c AddCustomerInstructionCommand) Validate() error {
	return c.guard.Validate(ErrAddCustomerInstructionCommandIsNotConstructed)
}

func (c AddCustomerInstructionCommand) OrderID() string {
	return c.orderID
}

func (c AddCustomerInstructionCommand) Text() string {
	return c.text
}
