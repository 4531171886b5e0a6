package enums

import "fmt"

// WigStyle represents the silhouette bucket of a wig style.
type WigStyle string

const (
	WigStyleClassic  WigStyle = "classic"
	WigStyleLayered  WigStyle = "layered"
	WigStyleShag     WigStyle = "shag"
	WigStylePixieCut WigStyle = "pixie_cut"
	WigStyleBobCut   WigStyle = "bob_cut"
	WigStyleUpdo     WigStyle = "updo"
	WigStyleBraided  WigStyle = "braided"
)

var validWigStyles = []WigStyle{
	WigStyleClassic,
	WigStyleLayered,
	WigStyleShag,
	WigStylePixieCut,
	WigStyleBobCut,
	WigStyleUpdo,
	WigStyleBraided,
}

// String implements fmt.Stringer.
func (s WigStyle) String() string {
	return string(s)
}

// IsValid reports whether the value is a known WigStyle.
func (s WigStyle) IsValid() bool {
	for _, candidate := range validWigStyles {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseWigStyle converts raw input into a WigStyle.
func ParseWigStyle(value string) (WigStyle, error) {
	for _, candidate := range validWigStyles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wig style %q", value)
}
