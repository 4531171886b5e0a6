package matchconfig

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/multierr"

	pkgerrors "github.com/velvetcrown/wigmatch-backend/pkg/errors"
)

const weightSumTolerance = 1e-6

// Validate checks that every weight lies in [0,1] and that the five weights
// sum to 1.0 within tolerance. All violations are collected before the
// configuration is rejected.
func (w ScoringWeights) Validate() error {
	var errs error

	check := func(name string, value float64) {
		if value < 0 || value > 1 {
			errs = multierr.Append(errs, fmt.Errorf("%s weight %v outside [0,1]", name, value))
		}
	}
	check("color", w.Color)
	check("texture", w.Texture)
	check("availability", w.Availability)
	check("popularity", w.Popularity)
	check("capFeature", w.CapFeature)

	sum := w.Color + w.Texture + w.Availability + w.Popularity + w.CapFeature
	if math.Abs(sum-1.0) > weightSumTolerance {
		errs = multierr.Append(errs, fmt.Errorf("weights sum to %v, expected 1.0", sum))
	}

	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInvalidConfig, errs, "invalid scoring weights")
	}
	return nil
}

// ValidateFamilies checks that at least one family is configured, that no
// family repeats, and that no deny-list term appears in two families.
func ValidateFamilies(families []FamilySettings) error {
	var errs error

	if len(families) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("at least one color family is required"))
	}

	seenFamily := map[string]struct{}{}
	termOwner := map[string]string{}
	for _, fs := range families {
		name := string(fs.Family)
		if !fs.Family.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("unknown color family %q", name))
		}
		if _, dup := seenFamily[name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("color family %q configured twice", name))
		}
		seenFamily[name] = struct{}{}

		for _, term := range fs.DenylistTerms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			if owner, dup := termOwner[term]; dup && owner != name {
				errs = multierr.Append(errs, fmt.Errorf("deny-list term %q appears in families %q and %q", term, owner, name))
				continue
			}
			termOwner[term] = name
		}
	}

	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInvalidConfig, errs, "invalid color family settings")
	}
	return nil
}
