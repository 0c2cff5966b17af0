package kernel

import "unicode/utf16"

const (
	cityCenterLat = -34.6037
	cityCenterLng = -58.3816
)

// DefaultLocation returns the city centre where newly registered drivers start.
func DefaultLocation() Location {
	return MustNewLocation(cityCenterLat, cityCenterLng)
}

// GeocodeAddress maps an address to a stable pseudo-location around the city centre.
// It is pure: equal strings always produce equal locations. The result stays
// within ±0.05° latitude and ±0.1° longitude of DefaultLocation.
//
// The hash is a 32-bit signed rolling hash (h = h*31 + c, wrapping) over the
// UTF-16 code units of the address.
func GeocodeAddress(address string) Location {
	h := addressHash(address)
	lat := cityCenterLat + float64(h%2000-1000)/20000
	lng := cityCenterLng + float64(h%4000-2000)/20000
	return MustNewLocation(lat, lng)
}

func addressHash(address string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(address)) {
		h = (h << 5) - h + int32(unit)
	}
	return h
}
