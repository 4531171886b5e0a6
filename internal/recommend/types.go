package recommend

import (
	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/internal/attributes"
	"github.com/velvetcrown/wigmatch-backend/internal/scoring"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
)

// Request carries everything one recommendation run needs. The profile is
// produced by an external analysis step and treated as read-only.
type Request struct {
	TenantID  uuid.UUID
	RequestID string
	Profile   scoring.UserProfile
	Limit     int
	// IncludeUnavailable widens retrieval to sold-out stock; those candidates
	// still score with the reduced availability constant.
	IncludeUnavailable bool
}

// FactorScores exposes the per-factor breakdown alongside the total.
type FactorScores struct {
	Color        float64 `json:"color"`
	Texture      float64 `json:"texture"`
	Availability float64 `json:"availability"`
	Popularity   float64 `json:"popularity"`
	CapFeature   float64 `json:"cap_feature"`
	Total        float64 `json:"total"`
}

// RankedResult is one entry of the final ordered list, shaped for direct
// serialization.
type RankedResult struct {
	VariantID           uuid.UUID                `json:"variant_id"`
	BaseProductHandle   string                   `json:"base_product_handle"`
	Title               string                   `json:"title"`
	Vendor              string                   `json:"vendor,omitempty"`
	PriceCents          int                      `json:"price_cents"`
	CompareAtPriceCents *int                     `json:"compare_at_price_cents,omitempty"`
	SalePercentOff      int64                    `json:"sale_percent_off,omitempty"`
	ImageKey            string                   `json:"image_key,omitempty"`
	Attributes          attributes.WigAttributes `json:"attributes"`
	Scores              FactorScores             `json:"scores"`
	Reasons             []string                 `json:"reasons"`
	IsAlternativeStyle  bool                     `json:"is_alternative_style"`
	Badges              []enums.MatchBadge       `json:"badges,omitempty"`
}

// Response is the ordered, explained recommendation list. Partial marks runs
// where one or more retrieval partitions missed the deadline; Diagnostics
// explains empty or degraded results.
type Response struct {
	Results        []RankedResult `json:"results"`
	Partial        bool           `json:"partial"`
	Diagnostics    []string       `json:"diagnostics,omitempty"`
	WeightsVersion int            `json:"weights_version"`
}
