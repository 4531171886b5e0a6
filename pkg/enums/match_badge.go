package enums

import "fmt"

// MatchBadge represents optional badges attached to ranked match results.
type MatchBadge string

const (
	MatchBadgeTopMatch MatchBadge = "top_match"
	MatchBadgeOnSale   MatchBadge = "on_sale"
	MatchBadgePopular  MatchBadge = "popular"
)

var validMatchBadges = []MatchBadge{
	MatchBadgeTopMatch,
	MatchBadgeOnSale,
	MatchBadgePopular,
}

// String implements fmt.Stringer.
func (b MatchBadge) String() string {
	return string(b)
}

// IsValid reports whether the value is a known MatchBadge.
func (b MatchBadge) IsValid() bool {
	for _, candidate := range validMatchBadges {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseMatchBadge converts raw input into a MatchBadge.
func ParseMatchBadge(value string) (MatchBadge, error) {
	for _, candidate := range validMatchBadges {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid match badge %q", value)
}
