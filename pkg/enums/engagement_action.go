package enums

import "fmt"

// EngagementAction represents a shopper interaction with a catalog variant.
type EngagementAction string

const (
	EngagementView     EngagementAction = "view"
	EngagementFavorite EngagementAction = "favorite"
	EngagementPurchase EngagementAction = "purchase"
)

var validEngagementActions = []EngagementAction{
	EngagementView,
	EngagementFavorite,
	EngagementPurchase,
}

// String implements fmt.Stringer.
func (a EngagementAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known EngagementAction.
func (a EngagementAction) IsValid() bool {
	for _, candidate := range validEngagementActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseEngagementAction converts raw input into an EngagementAction.
func ParseEngagementAction(value string) (EngagementAction, error) {
	for _, candidate := range validEngagementActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid engagement action %q", value)
}
