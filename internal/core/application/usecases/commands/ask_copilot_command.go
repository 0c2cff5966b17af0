package commands

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAskCoPilotCommandIsNotConstructed = errors.New(
	"AskCoPilotCommand must be created via NewAskCoPilotCommand constructor",
)

// AskCoPilotCommand sends a driver's conversation to the co-pilot assistant.
// The last turn is the driver's new question.
type AskCoPilotCommand struct {
	driverID string
	history  []ports.CoPilotTurn

	guard guard.ConstructorGuard
}

func NewAskCoPilotCommand(driverID string, history []ports.CoPilotTurn) (AskCoPilotCommand, error) {
	cmd := AskCoPilotCommand{
		driverID: strings.TrimSpace(driverID),
		history:  append([]ports.CoPilotTurn(nil), history...),
		guard:    guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.driverID == "" {
		errList = append(errList, ErrDriverIDIsRequired)
	}
	if len(cmd.history) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("history"))
	}
	for i, turn := range cmd.history {
		if turn.Role != ports.RoleUser && turn.Role != ports.RoleModel {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"history", fmt.Errorf("turn %d has unknown role %q", i, turn.Role)))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return AskCoPilotCommand{}, err
	}

	return cmd, nil
}

func (c AskCoPilotCommand) Validate() error {
	return c.guard.Validate(ErrAskCoPilotCommandIsNotConstructed)
}

func (c AskCoPilotCommand) DriverID() string {
	return c.driverID
}

func (c AskCoPilotCommand) History() []ports.CoPilotTurn {
	return append([]ports.CoPilotTurn(nil), c.history...)
}
