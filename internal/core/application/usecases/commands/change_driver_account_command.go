package commands

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrChangeDriverAccountCommandIsNotConstructed = errors.New(
	"ChangeDriverAccountCommand must be created via NewChangeDriverAccountCommand constructor",
)

// AccountAction is an administrative decision about a driver account.
type AccountAction string

const (
	ApproveAccount AccountAction = "approve"
	RejectAccount  AccountAction = "reject"
	DeleteAccount  AccountAction = "delete"
)

func (a AccountAction) Validate() error {
	switch a {
	case ApproveAccount, RejectAccount, DeleteAccount:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("account action", fmt.Errorf("%q is not a valid action", string(a)))
	}
}

// ChangeDriverAccountCommand approves, rejects or deletes a driver.
type ChangeDriverAccountCommand struct {
	driverID string
	action   AccountAction

	guard guard.ConstructorGuard
}

func NewChangeDriverAccountCommand(driverID string, action AccountAction) (ChangeDriverAccountCommand, error) {
	cmd := ChangeDriverAccountCommand{
		driverID: strings.TrimSpace(driverID),
		action:   action,
		guard:    guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.driverID == "" {
		errList = append(errList, ErrDriverIDIsRequired)
	}
	errList = append(errList, action.Validate())
	if err := errors.Join(errList...); err != nil {
		return ChangeDriverAccountCommand{}, err
	}

	return cmd, nil
}

func (c ChangeDriverAccountCommand) Validate() error {
	return c.guard.Validate(ErrChangeDriverAccountCommandIsNotConstructed)
}

func (c ChangeDriverAccountCommand) DriverID() string {
	return c.driverID
}

func (c ChangeDriverAccountCommand) Action() AccountAction {
	return c.action
}
