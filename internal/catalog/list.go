package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/pkg/db/models"
	dbtypes "github.com/velvetcrown/wigmatch-backend/pkg/db/types"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
	pkgpagination "github.com/velvetcrown/wigmatch-backend/pkg/pagination"
)

type ListParams struct {
	TenantID uuid.UUID
	Family   *enums.ColorFamily
	pkgpagination.Params
}

type ListResult struct {
	Items  []ListItem `json:"items"`
	Cursor string     `json:"cursor"`
}

type ListItem struct {
	ID                  uuid.UUID            `json:"id"`
	BaseProductHandle   string               `json:"base_product_handle"`
	Title               string               `json:"title"`
	Vendor              *string              `json:"vendor,omitempty"`
	PriceCents          int                  `json:"price_cents"`
	CompareAtPriceCents *int                 `json:"compare_at_price_cents,omitempty"`
	AvailableForSale    bool                 `json:"available_for_sale"`
	ColorFamily         enums.ColorFamily    `json:"color_family"`
	SwatchHex           *string              `json:"swatch_hex,omitempty"`
	ImageKey            *string              `json:"image_key,omitempty"`
	ImageURL            *string              `json:"image_url,omitempty"`
	RawAttributes       dbtypes.AttributeMap `json:"raw_attributes"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

func toListItem(m models.Variant) ListItem {
	return ListItem{
		ID:                  m.ID,
		BaseProductHandle:   m.BaseProductHandle,
		Title:               m.Title,
		Vendor:              m.Vendor,
		PriceCents:          m.PriceCents,
		CompareAtPriceCents: m.CompareAtPriceCents,
		AvailableForSale:    m.AvailableForSale,
		ColorFamily:         m.ColorFamily,
		SwatchHex:           m.SwatchHex,
		ImageKey:            m.ImageKey,
		RawAttributes:       m.RawAttributes,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
