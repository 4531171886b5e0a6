package scoring

import (
	"errors"
	"fmt"

	"github.com/velvetcrown/wigmatch-backend/internal/colorsci"
	"github.com/velvetcrown/wigmatch-backend/internal/matchconfig"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
	pkgerrors "github.com/velvetcrown/wigmatch-backend/pkg/errors"
)

// ErrFamilyExcluded marks a candidate whose classified color family differs
// from the profile's. The candidate is dropped rather than down-weighted, so
// a cross-family item can never outrank a same-family one.
var ErrFamilyExcluded = errors.New("candidate color family differs from profile")

const neutralScore = 0.5

// Engine computes per-factor and total scores for one candidate at a time.
// It is stateless across candidates; all request state arrives as arguments.
type Engine struct {
	deltaEThreshold float64
	soldOutScore    float64
}

// NewEngine builds a scoring engine. deltaEThreshold is the ΔE at which a
// same-family color contributes zero; soldOutScore is the availability score
// for items reported out of stock.
func NewEngine(deltaEThreshold, soldOutScore float64) (*Engine, error) {
	if deltaEThreshold <= 0 {
		return nil, fmt.Errorf("delta E threshold must be positive")
	}
	if soldOutScore < 0 || soldOutScore > 1 {
		return nil, fmt.Errorf("sold-out score must be in [0,1]")
	}
	return &Engine{deltaEThreshold: deltaEThreshold, soldOutScore: soldOutScore}, nil
}

// Score evaluates one candidate against the profile under the frozen
// configuration snapshot. It returns ErrFamilyExcluded or
// colorsci.ErrUnclassifiable for candidates the pipeline should drop.
func (e *Engine) Score(profile UserProfile, snap *matchconfig.Snapshot, cand Candidate) (MatchCandidate, error) {
	candidateLab := e.resolveCandidateLab(snap, cand)

	descriptor := cand.Descriptor
	if descriptor == "" {
		descriptor = cand.Title
	}

	family, err := colorsci.ClassifyFamily(descriptor, candidateLab, snap.FamilyProfiles())
	if err != nil {
		return MatchCandidate{}, err
	}
	if family != profile.ColorFamily {
		return MatchCandidate{}, ErrFamilyExcluded
	}

	targetLab, err := e.resolveProfileLab(profile, snap)
	if err != nil {
		return MatchCandidate{}, err
	}

	distance := colorsci.DeltaE(targetLab, candidateLab)
	colorScore := 1.0 - distance/e.deltaEThreshold
	if colorScore < 0 {
		colorScore = 0
	}

	mc := MatchCandidate{
		Candidate:         cand,
		ClassifiedFamily:  family,
		ColorScore:        colorScore,
		TextureScore:      textureScore(profile.Texture, cand.Attributes.Texture),
		AvailabilityScore: availabilityScore(cand.AvailableForSale, e.soldOutScore),
		PopularityScore:   popularityScore(cand.Popularity),
		CapFeatureScore:   capFeatureScore(profile.CapPreferences, cand),
	}

	w := snap.Weights()
	total := w.Color*mc.ColorScore +
		w.Texture*mc.TextureScore +
		w.Availability*mc.AvailabilityScore +
		w.Popularity*mc.PopularityScore +
		w.CapFeature*mc.CapFeatureScore
	mc.TotalScore = clamp01(total)

	mc.Reasons = buildReasons(profile, w, mc)
	return mc, nil
}

// resolveCandidateLab prefers the swatch color; variants without one fall
// back to the centroid of their ingest-time family.
func (e *Engine) resolveCandidateLab(snap *matchconfig.Snapshot, cand Candidate) colorsci.Lab {
	if cand.Lab != nil {
		return *cand.Lab
	}
	if fs, ok := snap.Family(cand.StoredFamily); ok {
		return fs.Centroid
	}
	if fs, ok := snap.Family(cand.Attributes.ColorFamily); ok {
		return fs.Centroid
	}
	return colorsci.Lab{L: 50}
}

func (e *Engine) resolveProfileLab(profile UserProfile, snap *matchconfig.Snapshot) (colorsci.Lab, error) {
	if profile.LabEstimate != nil {
		return *profile.LabEstimate, nil
	}
	fs, ok := snap.Family(profile.ColorFamily)
	if !ok {
		return colorsci.Lab{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("profile color family %q is not configured", profile.ColorFamily))
	}
	return colorsci.SynthesizeLab(fs.Centroid, profile.Lightness), nil
}

func availabilityScore(available *bool, soldOutScore float64) float64 {
	if available == nil {
		return neutralScore
	}
	if *available {
		return 1.0
	}
	return soldOutScore
}

func popularityScore(popularity *float64) float64 {
	if popularity == nil {
		return neutralScore
	}
	return clamp01(*popularity)
}

func capFeatureScore(preferences []enums.CapConstruction, cand Candidate) float64 {
	for _, pref := range preferences {
		if pref == cand.Attributes.CapConstruction {
			return 1.0
		}
	}
	return neutralScore
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
