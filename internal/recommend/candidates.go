package recommend

import (
	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/internal/attributes"
	"github.com/velvetcrown/wigmatch-backend/internal/colorsci"
	"github.com/velvetcrown/wigmatch-backend/internal/curation"
	"github.com/velvetcrown/wigmatch-backend/internal/scoring"
	"github.com/velvetcrown/wigmatch-backend/pkg/db/models"
)

// buildCandidate prepares one variant row for scoring: normalized attributes,
// the shade descriptor, and the swatch LAB when the row carries a usable hex.
func buildCandidate(v models.Variant, popularity map[uuid.UUID]float64) scoring.Candidate {
	attrs, fallbacks := attributes.Normalize(v.RawAttributes)

	cand := scoring.Candidate{
		VariantID:           v.ID,
		BaseProductHandle:   v.BaseProductHandle,
		Title:               v.Title,
		PriceCents:          v.PriceCents,
		CompareAtPriceCents: v.CompareAtPriceCents,
		StoredFamily:        v.ColorFamily,
		Descriptor:          descriptor(v),
		Attributes:          attrs,
		Fallbacks:           fallbacks,
	}
	if v.Vendor != nil {
		cand.Vendor = *v.Vendor
	}
	if v.ImageKey != nil {
		cand.ImageKey = *v.ImageKey
	}

	available := v.AvailableForSale
	cand.AvailableForSale = &available

	if v.SwatchHex != nil {
		if rgb, err := colorsci.ParseHex(*v.SwatchHex); err == nil {
			lab := colorsci.ToLab(rgb)
			cand.Lab = &lab
		}
	}

	if score, ok := popularity[v.ID]; ok {
		cand.Popularity = &score
	}
	return cand
}

// descriptor picks the free-text shade name classification runs against.
func descriptor(v models.Variant) string {
	for _, key := range []string{"color", "colour", "shade"} {
		if val, ok := v.RawAttributes[key]; ok && val != "" {
			return val
		}
	}
	return v.Title
}

func toRankedResult(mc scoring.MatchCandidate) RankedResult {
	return RankedResult{
		VariantID:           mc.VariantID,
		BaseProductHandle:   mc.BaseProductHandle,
		Title:               mc.Title,
		Vendor:              mc.Vendor,
		PriceCents:          mc.PriceCents,
		CompareAtPriceCents: mc.CompareAtPriceCents,
		SalePercentOff:      curation.PercentOff(mc.PriceCents, mc.CompareAtPriceCents).IntPart(),
		ImageKey:            mc.ImageKey,
		Attributes:          mc.Attributes,
		Scores: FactorScores{
			Color:        mc.ColorScore,
			Texture:      mc.TextureScore,
			Availability: mc.AvailabilityScore,
			Popularity:   mc.PopularityScore,
			CapFeature:   mc.CapFeatureScore,
			Total:        mc.TotalScore,
		},
		Reasons:            mc.Reasons,
		IsAlternativeStyle: mc.IsAlternativeStyle,
		Badges:             mc.Badges,
	}
}
