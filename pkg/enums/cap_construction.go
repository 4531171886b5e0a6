package enums

import "fmt"

// CapConstruction represents the wig cap build types carried by the catalog.
type CapConstruction string

const (
	CapConstructionBasic        CapConstruction = "basic"
	CapConstructionMonofilament CapConstruction = "monofilament"
	CapConstructionLaceFront    CapConstruction = "lace_front"
	CapConstructionFullLace     CapConstruction = "full_lace"
	CapConstructionHandTied     CapConstruction = "hand_tied"
)

var validCapConstructions = []CapConstruction{
	CapConstructionBasic,
	CapConstructionMonofilament,
	CapConstructionLaceFront,
	CapConstructionFullLace,
	CapConstructionHandTied,
}

// String implements fmt.Stringer.
func (c CapConstruction) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CapConstruction.
func (c CapConstruction) IsValid() bool {
	for _, candidate := range validCapConstructions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCapConstruction converts raw input into a CapConstruction.
func ParseCapConstruction(value string) (CapConstruction, error) {
	for _, candidate := range validCapConstructions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cap construction %q", value)
}
