package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary over the fleet state.
// Changes made through its repositories become visible together on Commit
// or not at all.
type UnitOfWork interface {
	// Begin starts the transaction. Calling it twice is a no-op.
	Begin(ctx context.Context) error

	// Commit applies every staged change.
	// Returns error if no active transaction exists.
	Commit(ctx context.Context) error

	// Rollback discards every staged change.
	// Returns error if no active transaction exists.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	DriverRepository() DriverRepository
	JournalRepository() JournalRepository
}
