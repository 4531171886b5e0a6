package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/velvetcrown/wigmatch-backend/pkg/db/types"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
)

// Variant represents one sellable color/style record of a wig. Rows are
// created and updated by the catalog ingestion pipeline; this service only
// reads them. BaseProductHandle groups the color variants of one style.
type Variant struct {
	ID                  uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID            uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index:idx_variants_tenant_family"`
	BaseProductHandle   string    `gorm:"column:base_product_handle;not null"`
	Title               string    `gorm:"column:title;not null"`
	Vendor              *string   `gorm:"column:vendor"`
	PriceCents          int       `gorm:"column:price_cents;not null"`
	CompareAtPriceCents *int      `gorm:"column:compare_at_price_cents"`
	AvailableForSale    bool      `gorm:"column:available_for_sale;not null;default:true"`
	ImageKey            *string   `gorm:"column:image_key"`
	// ColorFamily is denormalized at ingest so retrieval can partition the
	// candidate pool without classifying every row per request.
	ColorFamily   enums.ColorFamily    `gorm:"column:color_family;not null;index:idx_variants_tenant_family"`
	SwatchHex     *string              `gorm:"column:swatch_hex"`
	RawAttributes dbtypes.AttributeMap `gorm:"column:raw_attributes;type:jsonb;not null;default:'{}'"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the GORM default.
func (Variant) TableName() string {
	return "variants"
}
