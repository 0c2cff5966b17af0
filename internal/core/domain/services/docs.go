// Package services provides domain services that work across several aggregates.
//
// The package includes:
//   - RouteSequencer: greedy nearest-neighbour ordering of a driver's active deliveries
//   - OrderDispatcher: nearest eligible driver selection for a pending order
package services
