package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoringWeightsConfig stores the per-tenant factor weights. Versions are
// monotonically increasing; the loader picks the highest active version and
// validation (weights sum to 1.0) happens at load time, never at scoring time.
type ScoringWeightsConfig struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID           uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index:idx_scoring_weights_tenant"`
	Version            int       `gorm:"column:version;not null;default:1"`
	ColorWeight        float64   `gorm:"column:color_weight;not null"`
	TextureWeight      float64   `gorm:"column:texture_weight;not null"`
	AvailabilityWeight float64   `gorm:"column:availability_weight;not null"`
	PopularityWeight   float64   `gorm:"column:popularity_weight;not null"`
	CapFeatureWeight   float64   `gorm:"column:cap_feature_weight;not null"`
	Active             bool      `gorm:"column:active;not null;default:true"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the GORM default.
func (ScoringWeightsConfig) TableName() string {
	return "scoring_weights_configs"
}
