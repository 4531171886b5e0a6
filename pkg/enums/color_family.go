package enums

import "fmt"

// ColorFamily represents the closed set of catalog color families. Families act
// as a hard filter before fine-grained shade distance scoring.
type ColorFamily string

const (
	ColorFamilyBlonde   ColorFamily = "blonde"
	ColorFamilyBrunette ColorFamily = "brunette"
	ColorFamilyBlack    ColorFamily = "black"
	ColorFamilyRed      ColorFamily = "red"
	ColorFamilyGray     ColorFamily = "gray"
	ColorFamilyWhite    ColorFamily = "white"
	ColorFamilyFantasy  ColorFamily = "fantasy"
)

var validColorFamilies = []ColorFamily{
	ColorFamilyBlonde,
	ColorFamilyBrunette,
	ColorFamilyBlack,
	ColorFamilyRed,
	ColorFamilyGray,
	ColorFamilyWhite,
	ColorFamilyFantasy,
}

// ColorFamilies returns every known family in declaration order.
func ColorFamilies() []ColorFamily {
	out := make([]ColorFamily, len(validColorFamilies))
	copy(out, validColorFamilies)
	return out
}

// String implements fmt.Stringer.
func (c ColorFamily) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ColorFamily.
func (c ColorFamily) IsValid() bool {
	for _, candidate := range validColorFamilies {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseColorFamily converts raw input into a ColorFamily.
func ParseColorFamily(value string) (ColorFamily, error) {
	for _, candidate := range validColorFamilies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid color family %q", value)
}
