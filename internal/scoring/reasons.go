package scoring

import (
	"fmt"
	"sort"

	"github.com/velvetcrown/wigmatch-backend/internal/matchconfig"
)

const maxReasons = 4

type contribution struct {
	order    int // stable tie-break, fixed factor order
	weighted float64
	text     string
}

// buildReasons produces up to four explanation strings ordered by weighted
// contribution, largest first. Factors whose normalized attribute fell back
// to a default carry a qualifier, so degraded input stays visible.
func buildReasons(profile UserProfile, w matchconfig.ScoringWeights, mc MatchCandidate) []string {
	defaulted := map[string]bool{}
	for _, fb := range mc.Fallbacks {
		defaulted[fb.Attribute] = true
	}

	contribs := []contribution{
		{order: 0, weighted: w.Color * mc.ColorScore, text: colorReason(mc, defaulted["colorFamily"])},
		{order: 1, weighted: w.Texture * mc.TextureScore, text: textureReason(profile, mc, defaulted["texture"])},
		{order: 2, weighted: w.Availability * mc.AvailabilityScore, text: availabilityReason(mc)},
		{order: 3, weighted: w.Popularity * mc.PopularityScore, text: popularityReason(mc)},
		{order: 4, weighted: w.CapFeature * mc.CapFeatureScore, text: capReason(profile, mc, defaulted["capConstruction"])},
	}

	sort.SliceStable(contribs, func(i, j int) bool {
		if contribs[i].weighted != contribs[j].weighted {
			return contribs[i].weighted > contribs[j].weighted
		}
		return contribs[i].order < contribs[j].order
	})

	reasons := make([]string, 0, maxReasons)
	for _, c := range contribs {
		if len(reasons) == maxReasons {
			break
		}
		reasons = append(reasons, c.text)
	}
	return reasons
}

func colorReason(mc MatchCandidate, defaulted bool) string {
	var text string
	switch {
	case mc.ColorScore >= 0.8:
		text = fmt.Sprintf("Excellent color match within the %s family", mc.ClassifiedFamily)
	case mc.ColorScore >= 0.4:
		text = fmt.Sprintf("Good color match within the %s family", mc.ClassifiedFamily)
	default:
		text = fmt.Sprintf("Same %s color family as your profile", mc.ClassifiedFamily)
	}
	if defaulted {
		text += " (shade inferred from limited product data)"
	}
	return text
}

func textureReason(profile UserProfile, mc MatchCandidate, defaulted bool) string {
	var text string
	if profile.Texture == mc.Attributes.Texture {
		text = fmt.Sprintf("Matches your %s texture", profile.Texture)
	} else {
		text = fmt.Sprintf("The %s texture pairs with your %s hair", mc.Attributes.Texture, profile.Texture)
	}
	if defaulted {
		text += " (texture inferred from limited product data)"
	}
	return text
}

func availabilityReason(mc MatchCandidate) string {
	switch {
	case mc.AvailabilityScore >= 1.0:
		return "In stock and ready to ship"
	case mc.AvailableForSale != nil && !*mc.AvailableForSale:
		return "Currently sold out but worth watching"
	default:
		return "Stock status not reported by the seller"
	}
}

func popularityReason(mc MatchCandidate) string {
	if mc.PopularityScore >= 0.7 {
		return "A favorite with other shoppers"
	}
	return "A steady pick among shoppers"
}

func capReason(profile UserProfile, mc MatchCandidate, defaulted bool) string {
	var text string
	matched := false
	for _, pref := range profile.CapPreferences {
		if pref == mc.Attributes.CapConstruction {
			matched = true
			break
		}
	}
	if matched {
		text = fmt.Sprintf("Has your preferred %s cap construction", mc.Attributes.CapConstruction)
	} else {
		text = fmt.Sprintf("Built on a %s cap", mc.Attributes.CapConstruction)
	}
	if defaulted {
		text += " (cap type inferred from limited product data)"
	}
	return text
}
