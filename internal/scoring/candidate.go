package scoring

import (
	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/internal/attributes"
	"github.com/velvetcrown/wigmatch-backend/internal/colorsci"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
)

// Candidate is one retrieved variant prepared for scoring: normalized
// attributes plus the raw color signals classification needs.
type Candidate struct {
	VariantID           uuid.UUID
	BaseProductHandle   string
	Title               string
	Vendor              string
	PriceCents          int
	CompareAtPriceCents *int
	ImageKey            string

	// AvailableForSale is nil when the source did not report stock state.
	AvailableForSale *bool

	// StoredFamily is the family denormalized at ingest. Classification is
	// re-run at scoring time; this only anchors the LAB estimate when the
	// variant carries no swatch.
	StoredFamily enums.ColorFamily

	// Descriptor is the free-text shade name used for deny-list and keyword
	// classification.
	Descriptor string

	// Lab is the swatch color, when the variant has one.
	Lab *colorsci.Lab

	// Popularity is an externally supplied normalized metric; nil reads as
	// the neutral 0.5.
	Popularity *float64

	Attributes attributes.WigAttributes
	Fallbacks  []attributes.Fallback
}

// MatchCandidate is a scored candidate. Built by the engine, ordered and
// decorated by the curator, discarded once the response is serialized.
type MatchCandidate struct {
	Candidate

	ClassifiedFamily  enums.ColorFamily
	ColorScore        float64
	TextureScore      float64
	AvailabilityScore float64
	PopularityScore   float64
	CapFeatureScore   float64
	TotalScore        float64

	// Reasons holds up to four explanation strings ordered by weighted
	// contribution, largest first.
	Reasons []string

	IsAlternativeStyle bool
	Badges             []enums.MatchBadge
}
