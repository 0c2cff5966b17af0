package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Listing methods return orders newest first unless a route resequenced them.
type OrderRepository interface {
	// Add persists a new order. The id must not exist yet.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier, or an ObjectNotFoundError.
	Get(ctx context.Context, id string) (*order.Order, error)

	// GetAllInStatus lists orders in the given status in list order.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetActiveByDriver lists the InProgress orders assigned to driverID in list order.
	GetActiveByDriver(ctx context.Context, driverID string) ([]*order.Order, error)

	// Resequence moves the given orders of driverID to the end of the list
	// in the given order. Used after route optimisation.
	Resequence(ctx context.Context, driverID string, orderedIDs []string) error
}
