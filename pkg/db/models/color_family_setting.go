package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
)

// ColorFamilySetting stores one family's classification data for a tenant:
// the LAB centroid used for nearest-centroid selection and the deny-list terms
// that veto the family regardless of distance.
type ColorFamilySetting struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID      uuid.UUID         `gorm:"column:tenant_id;type:uuid;not null;index:idx_color_family_settings_tenant"`
	Family        enums.ColorFamily `gorm:"column:family;not null"`
	CentroidL     float64           `gorm:"column:centroid_l;not null"`
	CentroidA     float64           `gorm:"column:centroid_a;not null"`
	CentroidB     float64           `gorm:"column:centroid_b;not null"`
	Undertone     enums.Undertone   `gorm:"column:undertone;not null;default:'neutral'"`
	DenylistTerms pq.StringArray    `gorm:"column:denylist_terms;type:text[];not null;default:ARRAY[]::text[]"`
	Active        bool              `gorm:"column:active;not null;default:true"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the GORM default.
func (ColorFamilySetting) TableName() string {
	return "color_family_settings"
}
