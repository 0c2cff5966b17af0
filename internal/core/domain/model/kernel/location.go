package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// LatitudeMin is the southernmost valid latitude.
	LatitudeMin = -90.0
	// LatitudeMax is the northernmost valid latitude.
	LatitudeMax = 90.0
	// LongitudeMin is the westernmost valid longitude.
	LongitudeMin = -180.0
	// LongitudeMax is the easternmost valid longitude.
	LongitudeMax = 180.0

	// EarthRadiusKm is the mean Earth radius used by Distance.
	EarthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
// Locations must be created using NewLocation, GeocodeAddress or DefaultLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation, GeocodeAddress or DefaultLocation")

// Location is an immutable geographic point in decimal degrees.
// The zero value of Location is invalid and will fail validation - use constructors to create instances.
//
// Example:
//
//	loc, err := kernel.NewLocation(-34.6037, -58.3816)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Location: %s", loc) // Output: Location(-34.603700,-58.381600)
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation creates a new Location.
// Latitude must be within [LatitudeMin..LatitudeMax] and longitude within
// [LongitudeMin..LongitudeMax]; NaN is rejected for both.
//
// Returns:
//   - Location: A valid location instance
//   - error: Validation error if coordinates are out of bounds
func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// MustNewLocation is NewLocation for coordinates known to be valid, such as constants.
// It panics on invalid input.
func MustNewLocation(lat, lng float64) Location {
	loc, err := NewLocation(lat, lng)
	if err != nil {
		panic(err)
	}
	return loc
}

// Validate checks if the Location was properly constructed using a constructor.
//
// Returns:
//   - error: ErrLocationIsNotConstructed if the location was not properly initialized, nil otherwise
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lng returns the longitude in decimal degrees.
func (l Location) Lng() float64 {
	return l.lng
}

// String returns a human-readable string representation of the Location.
// The format is "Location(lat,lng)" with six decimals.
func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.lat, l.lng)
}

// IsEqual compares two locations for equality.
// Both locations must be properly constructed (pass validation) for the comparison to succeed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lng == other.lng, nil
}

// Distance calculates the great-circle (haversine) distance between two locations in kilometres.
// Both locations must be properly constructed (pass validation) for the calculation to succeed.
//
// Example:
//
//	from, _ := kernel.NewLocation(0, 0)
//	to, _ := kernel.NewLocation(0, 1)
//
//	km, err := from.Distance(to)
//	// km ≈ 111.19, err = nil
func (l Location) Distance(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return haversine(l.lat, l.lng, other.lat, other.lng), nil
}

// Offset returns a new location shifted by the given deltas in degrees.
// The result is validated like any other location.
func (l Location) Offset(dLat, dLng float64) (Location, error) {
	if err := l.Validate(); err != nil {
		return Location{}, err
	}
	return NewLocation(l.lat+dLat, l.lng+dLng)
}

// setLat uses a pointer receiver so the constructor can validate in place.
func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	l.lat = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}

	l.lng = lng
	return nil
}

func haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)
	rLat1 := toRadians(lat1)
	rLat2 := toRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(rLat1)*math.Cos(rLat2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
