package colorsci

import (
	"math"
	"strings"

	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
	pkgerrors "github.com/velvetcrown/wigmatch-backend/pkg/errors"
)

// ErrUnclassifiable is returned when every family's deny-list vetoes the
// descriptor. Callers drop the candidate and log; the request itself proceeds.
var ErrUnclassifiable = pkgerrors.New(pkgerrors.CodeValidation, "descriptor vetoed by every color family")

// FamilyProfile is the read-only classification view of one color family:
// its LAB centroid and the deny-list terms that veto it outright.
type FamilyProfile struct {
	Family        enums.ColorFamily
	Centroid      Lab
	DenylistTerms []string
}

// ClassifyFamily assigns a descriptor + LAB estimate to a color family.
//
// Precedence, in order:
//  1. deny-list veto: a family whose deny-list term appears in the descriptor
//     is excluded no matter how close its centroid is;
//  2. explicit keyword: a surviving family whose name appears as a word in the
//     descriptor wins over centroid distance;
//  3. nearest centroid by ΔE among surviving families.
//
// Mislabeled source data is the reason the veto outranks the keyword: a
// product titled with a blonde keyword but tagged "dark chocolate" must not
// classify blonde.
func ClassifyFamily(descriptor string, estimate Lab, families []FamilyProfile) (enums.ColorFamily, error) {
	norm := strings.ToLower(descriptor)
	tokens := tokenize(norm)

	surviving := make([]FamilyProfile, 0, len(families))
	for _, fp := range families {
		if vetoed(norm, fp.DenylistTerms) {
			continue
		}
		surviving = append(surviving, fp)
	}
	if len(surviving) == 0 {
		return "", ErrUnclassifiable
	}

	// Explicit keyword beats distance. If multiple surviving family names
	// appear, the closest centroid among them breaks the tie.
	var keyword []FamilyProfile
	for _, fp := range surviving {
		if _, ok := tokens[string(fp.Family)]; ok {
			keyword = append(keyword, fp)
		}
	}
	if len(keyword) > 0 {
		return nearest(estimate, keyword), nil
	}

	return nearest(estimate, surviving), nil
}

// SynthesizeLab derives a LAB estimate for profiles that report only a
// lightness band instead of a measured color. The family centroid anchors the
// chroma; the band shifts L.
func SynthesizeLab(centroid Lab, lightness enums.Lightness) Lab {
	out := centroid
	switch lightness {
	case enums.LightnessLight:
		out.L = math.Min(95, centroid.L+15)
	case enums.LightnessDark:
		out.L = math.Max(5, centroid.L-15)
	}
	return out
}

func vetoed(descriptor string, terms []string) bool {
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if strings.Contains(descriptor, term) {
			return true
		}
	}
	return false
}

func nearest(estimate Lab, families []FamilyProfile) enums.ColorFamily {
	best := families[0].Family
	bestDist := DeltaE(estimate, families[0].Centroid)
	for _, fp := range families[1:] {
		dist := DeltaE(estimate, fp.Centroid)
		// strict less keeps the earliest family on exact ties; callers pass
		// families in canonical order so results stay deterministic
		if dist < bestDist || (dist == bestDist && fp.Family < best) {
			best = fp.Family
			bestDist = dist
		}
	}
	return best
}

func tokenize(s string) map[string]struct{} {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		out[f] = struct{}{}
	}
	return out
}
