package enums

import "fmt"

// HairType represents the fiber origin of a wig.
type HairType string

const (
	HairTypeSynthetic     HairType = "synthetic"
	HairTypeHumanHair     HairType = "human_hair"
	HairTypeHeatFriendly  HairType = "heat_friendly"
	HairTypeHumanBlend    HairType = "human_blend"
	HairTypeRemyHumanHair HairType = "remy_human_hair"
)

var validHairTypes = []HairType{
	HairTypeSynthetic,
	HairTypeHumanHair,
	HairTypeHeatFriendly,
	HairTypeHumanBlend,
	HairTypeRemyHumanHair,
}

// String implements fmt.Stringer.
func (h HairType) String() string {
	return string(h)
}

// IsValid reports whether the value is a known HairType.
func (h HairType) IsValid() bool {
	for _, candidate := range validHairTypes {
		if candidate == h {
			return true
		}
	}
	return false
}

// ParseHairType converts raw input into a HairType.
func ParseHairType(value string) (HairType, error) {
	for _, candidate := range validHairTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid hair type %q", value)
}
