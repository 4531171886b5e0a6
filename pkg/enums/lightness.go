package enums

import "fmt"

// Lightness represents the coarse lightness band of a user's hair shade, used
// when no direct LAB estimate is available.
type Lightness string

const (
	LightnessLight  Lightness = "light"
	LightnessMedium Lightness = "medium"
	LightnessDark   Lightness = "dark"
)

var validLightnesses = []Lightness{
	LightnessLight,
	LightnessMedium,
	LightnessDark,
}

// String implements fmt.Stringer.
func (l Lightness) String() string {
	return string(l)
}

// IsValid reports whether the value is a known Lightness.
func (l Lightness) IsValid() bool {
	for _, candidate := range validLightnesses {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLightness converts raw input into a Lightness.
func ParseLightness(value string) (Lightness, error) {
	for _, candidate := range validLightnesses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lightness %q", value)
}
