// Package kernel provides core domain primitives shared by the dispatch model.
//
// The package includes:
//   - Location: an immutable geographic point with haversine Distance
//   - GeocodeAddress / DefaultLocation: the deterministic address geocoder
//   - UUID: a value object for journal identifiers
//   - NewToken: human readable order and driver identifiers
//   - Clock: the time source used by handlers and jobs
//
// Value objects here refuse their zero value through guard.ConstructorGuard,
// so a Location that was never constructed fails Validate.
package kernel
