// Package queries contains read operations for retrieving fleet state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read from a committed snapshot and never open a unit of work.
package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetFleetQueryIsNotConstructed = errors.New(
	"GetFleetQuery must be created via NewGetFleetQuery constructor",
)

// GetFleetQuery retrieves every driver and order for the dispatch dashboard.
//
// Example:
//
//	query := NewGetFleetQuery()
//	handler := NewGetFleetQueryHandler(store)
//
//	fleet, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read fleet: %w", err)
//	}
type GetFleetQuery struct {
	guard guard.ConstructorGuard
}

func NewGetFleetQuery() GetFleetQuery {
	return GetFleetQuery{guard: guard.NewConstructorGuard()}
}

func (q GetFleetQuery) Validate() error {
	return q.guard.Validate(ErrGetFleetQueryIsNotConstructed)
}

// GetFleetQueryResponse lists drivers in registration order and orders in
// list order (newest first, optimised routes at the end).
type GetFleetQueryResponse struct {
	Drivers []DriverView `json:"drivers"`
	Orders  []OrderView  `json:"orders"`
}
