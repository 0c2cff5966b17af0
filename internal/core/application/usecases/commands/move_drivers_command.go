package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrMoveDriversCommandIsNotConstructed = errors.New(
	"MoveDriversCommand must be created via NewMoveDriversCommand constructor",
)

// MoveDriversCommand is one tick of the telemetry simulator.
//
// Example:
//
//	cmd := NewMoveDriversCommand()
//
//	// This would typically be called periodically by a scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("telemetry tick failed: %w", err)
//	}
type MoveDriversCommand struct {
	guard guard.ConstructorGuard
}

func NewMoveDriversCommand() MoveDriversCommand {
	return MoveDriversCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c MoveDriversCommand) Validate() error {
	return c.guard.Validate(ErrMoveDriversCommandIsNotConstructed)
}
