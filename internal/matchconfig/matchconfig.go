package matchconfig

import (
	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/internal/colorsci"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
)

// ScoringWeights holds the per-tenant factor weights. A valid set sums to
// 1.0 within ±1e-6; validation happens at load time so scoring never sees an
// invalid set.
type ScoringWeights struct {
	Color        float64 `json:"color"`
	Texture      float64 `json:"texture"`
	Availability float64 `json:"availability"`
	Popularity   float64 `json:"popularity"`
	CapFeature   float64 `json:"capFeature"`
	Version      int     `json:"version"`
}

// FamilySettings is the classification data for one color family.
type FamilySettings struct {
	Family        enums.ColorFamily
	Centroid      colorsci.Lab
	Undertone     enums.Undertone
	DenylistTerms []string
}

// Snapshot is the frozen per-tenant configuration handed to a request. It is
// built once at request start and never mutated, so a config change can never
// be observed mid-computation.
type Snapshot struct {
	tenantID uuid.UUID
	weights  ScoringWeights
	families []FamilySettings
	byFamily map[enums.ColorFamily]FamilySettings
}

// NewSnapshot freezes validated configuration. Families are kept in the
// order given; callers pass them in canonical (family name) order so
// downstream tie-breaks stay deterministic.
func NewSnapshot(tenantID uuid.UUID, weights ScoringWeights, families []FamilySettings) *Snapshot {
	byFamily := make(map[enums.ColorFamily]FamilySettings, len(families))
	frozen := make([]FamilySettings, len(families))
	for i, fs := range families {
		fs.DenylistTerms = append([]string(nil), fs.DenylistTerms...)
		frozen[i] = fs
		byFamily[fs.Family] = fs
	}
	return &Snapshot{
		tenantID: tenantID,
		weights:  weights,
		families: frozen,
		byFamily: byFamily,
	}
}

// TenantID returns the tenant this snapshot was loaded for.
func (s *Snapshot) TenantID() uuid.UUID {
	return s.tenantID
}

// Weights returns the frozen scoring weights.
func (s *Snapshot) Weights() ScoringWeights {
	return s.weights
}

// FamilyProfiles returns the classification view consumed by colorsci.
func (s *Snapshot) FamilyProfiles() []colorsci.FamilyProfile {
	out := make([]colorsci.FamilyProfile, len(s.families))
	for i, fs := range s.families {
		out[i] = colorsci.FamilyProfile{
			Family:        fs.Family,
			Centroid:      fs.Centroid,
			DenylistTerms: append([]string(nil), fs.DenylistTerms...),
		}
	}
	return out
}

// Families lists the configured color families in canonical order.
func (s *Snapshot) Families() []enums.ColorFamily {
	out := make([]enums.ColorFamily, len(s.families))
	for i, fs := range s.families {
		out[i] = fs.Family
	}
	return out
}

// Family looks up one family's settings.
func (s *Snapshot) Family(family enums.ColorFamily) (FamilySettings, bool) {
	fs, ok := s.byFamily[family]
	if !ok {
		return FamilySettings{}, false
	}
	fs.DenylistTerms = append([]string(nil), fs.DenylistTerms...)
	return fs, true
}
