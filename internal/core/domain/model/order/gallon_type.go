package order

import (
	"fmt"

	"refill/internal/pkg/errs"
)

// GallonType is the container format a customer refills.
type GallonType int

const (
	// GallonUnknown represents an invalid or undefined gallon type.
	GallonUnknown GallonType = iota

	// GallonRound is the classic round 5-gallon container.
	GallonRound

	// GallonSlim is the slim rectangular container.
	GallonSlim
)

// getGallonTypeStrings returns a map of GallonType values to their string representations.
func getGallonTypeStrings() map[GallonType]string {
	return map[GallonType]string{
		GallonUnknown: "UNKNOWN",
		GallonRound:   "ROUND",
		GallonSlim:    "SLIM",
	}
}

// GallonTypeFromString parses a persisted or inbound gallon type string.
func GallonTypeFromString(s string) (GallonType, error) {
	for gt, str := range getGallonTypeStrings() {
		if gt != GallonUnknown && str == s {
			return gt, nil
		}
	}
	return GallonUnknown, errs.NewValueIsInvalidErrorWithCause("gallonType",
		fmt.Errorf("%q is not a valid gallon type", s))
}

// String returns the canonical name of the gallon type.
func (g GallonType) String() string {
	if str, ok := getGallonTypeStrings()[g]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks if the GallonType is one of the defined container formats.
func (g GallonType) Validate() error {
	if g != GallonRound && g != GallonSlim {
		return errs.NewValueIsInvalidErrorWithCause("gallonType",
			fmt.Errorf("%d is not a valid gallon type", g))
	}
	return nil
}
