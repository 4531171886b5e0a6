package matchconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velvetcrown/wigmatch-backend/internal/colorsci"
	"github.com/velvetcrown/wigmatch-backend/pkg/db/models"
	pkgerrors "github.com/velvetcrown/wigmatch-backend/pkg/errors"
)

type configRepository interface {
	ActiveWeights(ctx context.Context, tenantID uuid.UUID) (*models.ScoringWeightsConfig, error)
	ActiveFamilySettings(ctx context.Context, tenantID uuid.UUID) ([]models.ColorFamilySetting, error)
}

// Service loads and validates per-tenant matching configuration.
type Service interface {
	// Load builds a frozen snapshot for one request. Configuration failing
	// validation is rejected here, before any scoring.
	Load(ctx context.Context, tenantID uuid.UUID) (*Snapshot, error)
}

type service struct {
	repo configRepository
}

// NewService builds a configuration service backed by the provided repository.
func NewService(repo configRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("config repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Load(ctx context.Context, tenantID uuid.UUID) (*Snapshot, error) {
	row, err := s.repo.ActiveWeights(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active scoring weights for tenant")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading scoring weights")
	}

	weights := ScoringWeights{
		Color:        row.ColorWeight,
		Texture:      row.TextureWeight,
		Availability: row.AvailabilityWeight,
		Popularity:   row.PopularityWeight,
		CapFeature:   row.CapFeatureWeight,
		Version:      row.Version,
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	settingRows, err := s.repo.ActiveFamilySettings(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading color family settings")
	}

	families := make([]FamilySettings, 0, len(settingRows))
	for _, sr := range settingRows {
		families = append(families, FamilySettings{
			Family:        sr.Family,
			Centroid:      colorsci.Lab{L: sr.CentroidL, A: sr.CentroidA, B: sr.CentroidB},
			Undertone:     sr.Undertone,
			DenylistTerms: append([]string(nil), sr.DenylistTerms...),
		})
	}
	if err := ValidateFamilies(families); err != nil {
		return nil, err
	}

	return NewSnapshot(tenantID, weights, families), nil
}
