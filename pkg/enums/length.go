package enums

import "fmt"

// WigLength represents the canonical length buckets for a wig style.
type WigLength string

const (
	WigLengthPixie     WigLength = "pixie"
	WigLengthShort     WigLength = "short"
	WigLengthBob       WigLength = "bob"
	WigLengthShoulder  WigLength = "shoulder"
	WigLengthMedium    WigLength = "medium"
	WigLengthLong      WigLength = "long"
	WigLengthExtraLong WigLength = "extra_long"
)

var validWigLengths = []WigLength{
	WigLengthPixie,
	WigLengthShort,
	WigLengthBob,
	WigLengthShoulder,
	WigLengthMedium,
	WigLengthLong,
	WigLengthExtraLong,
}

// String implements fmt.Stringer.
func (l WigLength) String() string {
	return string(l)
}

// IsValid reports whether the value is a known WigLength.
func (l WigLength) IsValid() bool {
	for _, candidate := range validWigLengths {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseWigLength converts raw input into a WigLength.
func ParseWigLength(value string) (WigLength, error) {
	for _, candidate := range validWigLengths {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wig length %q", value)
}
