package kernel

import (
	"strings"

	"dispatch/internal/pkg/errs"
)

// Address is a free-text street address paired with its geocoded location.
type Address struct {
	text     string
	location Location
}

// NewAddress trims text, rejects blanks and geocodes the result with GeocodeAddress.
func NewAddress(text string) (Address, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}
	return Address{text: text, location: GeocodeAddress(text)}, nil
}

// NewAddressAt pairs text with a known location instead of geocoding it.
func NewAddressAt(text string, location Location) (Address, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}
	if err := location.Validate(); err != nil {
		return Address{}, err
	}
	return Address{text: text, location: location}, nil
}

func (a Address) Text() string {
	return a.text
}

func (a Address) Location() Location {
	return a.location
}

// Validate fails for the zero Address.
func (a Address) Validate() error {
	if a.text == "" {
		return errs.NewValueIsRequiredError("address")
	}
	return a.location.Validate()
}
