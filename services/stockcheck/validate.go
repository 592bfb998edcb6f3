package stockcheck

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
)

// Radii are the search radii the store finder accepts, in miles.
var Radii = []int{15, 30, 50, 100, 300}

const DefaultRadius = 15

var (
	ErrInvalidPostalCode = errors.New("ZIP code must be exactly 5 digits")
	ErrInvalidRadius     = fmt.Errorf("radius must be one of %v", Radii)
)

var postalCodeRegex = regexp.MustCompile(`^[0-9]{5}$`)

func ValidatePostalCode(postalCode string) error {
	if !postalCodeRegex.MatchString(postalCode) {
		return ErrInvalidPostalCode
	}
	return nil
}

func ValidateRadius(radius int) error {
	if !slices.Contains(Radii, radius) {
		return ErrInvalidRadius
	}
	return nil
}
