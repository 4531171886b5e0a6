package enums

import "fmt"

// Undertone represents the skin/shade undertone derived for a user profile.
type Undertone string

const (
	UndertoneWarm    Undertone = "warm"
	UndertoneCool    Undertone = "cool"
	UndertoneNeutral Undertone = "neutral"
)

var validUndertones = []Undertone{
	UndertoneWarm,
	UndertoneCool,
	UndertoneNeutral,
}

// String implements fmt.Stringer.
func (u Undertone) String() string {
	return string(u)
}

// IsValid reports whether the value is a known Undertone.
func (u Undertone) IsValid() bool {
	for _, candidate := range validUndertones {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUndertone converts raw input into an Undertone.
func ParseUndertone(value string) (Undertone, error) {
	for _, candidate := range validUndertones {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid undertone %q", value)
}
