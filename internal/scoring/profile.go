package scoring

import (
	"github.com/velvetcrown/wigmatch-backend/internal/colorsci"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
)

// StylePreferences carries the softer styling signals from the profile
// analysis step. Free-form by design; only CapPreferences participates in
// scoring directly.
type StylePreferences struct {
	Silhouette  string `json:"silhouette,omitempty"`
	Formality   string `json:"formality,omitempty"`
	Maintenance string `json:"maintenance,omitempty"`
}

// UserProfile is the derived, read-only matching target for one request. It
// is produced by an external attribute-inference step and never mutated here.
type UserProfile struct {
	ColorFamily      enums.ColorFamily       `json:"colorFamily"`
	ShadeDescription string                  `json:"shadeDescription,omitempty"`
	Undertone        enums.Undertone         `json:"undertone"`
	Lightness        enums.Lightness         `json:"lightness"`
	LabEstimate      *colorsci.Lab           `json:"labEstimate,omitempty"`
	Length           enums.WigLength         `json:"length"`
	Texture          enums.HairTexture       `json:"texture"`
	CapPreferences   []enums.CapConstruction `json:"capPreferences,omitempty"`
	StylePreferences StylePreferences        `json:"stylePreferences"`
}
