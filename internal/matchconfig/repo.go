package matchconfig

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velvetcrown/wigmatch-backend/internal/repo"
	"github.com/velvetcrown/wigmatch-backend/pkg/db/models"
)

// Repository exposes matching configuration reads.
type Repository struct {
	repo.Base
}

// NewRepository constructs a configuration repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ActiveWeights returns the highest-version active weights row for the tenant.
func (r *Repository) ActiveWeights(ctx context.Context, tenantID uuid.UUID) (*models.ScoringWeightsConfig, error) {
	var row models.ScoringWeightsConfig
	err := r.DB(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("version DESC").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ActiveFamilySettings returns the tenant's active families in canonical
// (family name) order.
func (r *Repository) ActiveFamilySettings(ctx context.Context, tenantID uuid.UUID) ([]models.ColorFamilySetting, error) {
	var rows []models.ColorFamilySetting
	err := r.DB(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("family ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
