package curation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/velvetcrown/wigmatch-backend/internal/scoring"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
)

const popularBadgeFloor = 0.8

// Curator orders scored candidates, deduplicates by base product, fills any
// remaining slots with alternative styles, and assigns badges.
type Curator struct {
	topMatchFloor float64
}

// NewCurator builds a curator. topMatchFloor is the minimum total score the
// first result must reach to carry the top match badge.
func NewCurator(topMatchFloor float64) (*Curator, error) {
	if topMatchFloor < 0 || topMatchFloor > 1 {
		return nil, fmt.Errorf("top match floor must be in [0,1]")
	}
	return &Curator{topMatchFloor: topMatchFloor}, nil
}

// Curate produces the final ranked list: sort by total score descending with
// variant ID as the deterministic tie-break, keep the best variant per base
// product, then fill leftover slots with same-product alternatives flagged as
// such. An empty pool curates to an empty list, never an error.
func (c *Curator) Curate(candidates []scoring.MatchCandidate, limit int) []scoring.MatchCandidate {
	if limit <= 0 || len(candidates) == 0 {
		return []scoring.MatchCandidate{}
	}

	sorted := make([]scoring.MatchCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalScore != sorted[j].TotalScore {
			return sorted[i].TotalScore > sorted[j].TotalScore
		}
		return sorted[i].VariantID.String() < sorted[j].VariantID.String()
	})

	seen := make(map[string]struct{}, len(sorted))
	primaries := make([]scoring.MatchCandidate, 0, limit)
	alternatives := make([]scoring.MatchCandidate, 0, len(sorted))
	for _, mc := range sorted {
		if _, dup := seen[mc.BaseProductHandle]; dup {
			mc.IsAlternativeStyle = true
			alternatives = append(alternatives, mc)
			continue
		}
		seen[mc.BaseProductHandle] = struct{}{}
		mc.IsAlternativeStyle = false
		primaries = append(primaries, mc)
	}

	out := primaries
	if len(out) > limit {
		out = out[:limit]
	}
	for _, alt := range alternatives {
		if len(out) == limit {
			break
		}
		out = append(out, alt)
	}

	for i := range out {
		out[i].Badges = c.badges(i, out[i])
	}
	return out
}

func (c *Curator) badges(index int, mc scoring.MatchCandidate) []enums.MatchBadge {
	var badges []enums.MatchBadge
	if index == 0 && mc.TotalScore >= c.topMatchFloor {
		badges = append(badges, enums.MatchBadgeTopMatch)
	}
	if PercentOff(mc.PriceCents, mc.CompareAtPriceCents).IsPositive() {
		badges = append(badges, enums.MatchBadgeOnSale)
	}
	if mc.PopularityScore >= popularBadgeFloor {
		badges = append(badges, enums.MatchBadgePopular)
	}
	return badges
}

// PercentOff computes the discount against the compare-at price, rounded to
// whole percent. Zero when there is no markdown.
func PercentOff(priceCents int, compareAtCents *int) decimal.Decimal {
	if compareAtCents == nil || *compareAtCents <= 0 || priceCents >= *compareAtCents {
		return decimal.Zero
	}
	price := decimal.NewFromInt(int64(priceCents))
	compare := decimal.NewFromInt(int64(*compareAtCents))
	return compare.Sub(price).
		Div(compare).
		Mul(decimal.NewFromInt(100)).
		Round(0)
}
