package enums

import "fmt"

// HairDensity represents the fullness buckets for a wig.
type HairDensity string

const (
	HairDensityLight  HairDensity = "light"
	HairDensityMedium HairDensity = "medium"
	HairDensityHeavy  HairDensity = "heavy"
)

var validHairDensities = []HairDensity{
	HairDensityLight,
	HairDensityMedium,
	HairDensityHeavy,
}

// String implements fmt.Stringer.
func (d HairDensity) String() string {
	return string(d)
}

// IsValid reports whether the value is a known HairDensity.
func (d HairDensity) IsValid() bool {
	for _, candidate := range validHairDensities {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseHairDensity converts raw input into a HairDensity.
func ParseHairDensity(value string) (HairDensity, error) {
	for _, candidate := range validHairDensities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid hair density %q", value)
}
