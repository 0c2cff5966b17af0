package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrSmartAssignCommandIsNotConstructed = errors.New(
	"SmartAssignCommand must be created via NewSmartAssignCommand constructor",
)

// SmartAssignCommand asks the assignment oracle to match every Pending
// order with an eligible driver. It has no parameters.
type SmartAssignCommand struct {
	guard guard.ConstructorGuard
}

func NewSmartAssignCommand() SmartAssignCommand {
	return SmartAssignCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c SmartAssignCommand) Validate() error {
	return c.guard.Validate(ErrSmartAssignCommandIsNotConstructed)
}
