package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a newly registered driver. The id must not exist yet.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver by identifier, or an ObjectNotFoundError.
	Get(ctx context.Context, id string) (*driver.Driver, error)

	// Delete removes the driver. Journal entries that reference it are kept.
	Delete(ctx context.Context, id string) error

	// GetAll lists drivers in registration order.
	GetAll(ctx context.Context) ([]*driver.Driver, error)
}
