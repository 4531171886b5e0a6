package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velvetcrown/wigmatch-backend/internal/repo"
	"github.com/velvetcrown/wigmatch-backend/pkg/db/models"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
	pkgpagination "github.com/velvetcrown/wigmatch-backend/pkg/pagination"
)

// Repository exposes catalog reads. Variant rows are written by the ingestion
// pipeline; this service never mutates them.
type Repository struct {
	repo.Base
}

// NewRepository constructs a catalog repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// SearchVariants returns at most limit variants of one color family for the
// tenant. Sold-out stock is excluded unless the caller opts in; when included
// it sorts after available stock so a tight partition budget favors sellable
// items, and within a group the ordering is deterministic.
func (r *Repository) SearchVariants(ctx context.Context, tenantID uuid.UUID, family enums.ColorFamily, limit int, includeUnavailable bool) ([]models.Variant, error) {
	query := r.DB(ctx).
		Where("tenant_id = ? AND color_family = ?", tenantID, family)
	if !includeUnavailable {
		query = query.Where("available_for_sale = ?", true)
	}

	var rows []models.Variant
	err := query.
		Order("available_for_sale DESC").
		Order("created_at DESC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type listQuery struct {
	tenantID uuid.UUID
	family   *enums.ColorFamily
	cursor   *pkgpagination.Cursor
	limit    int
}

// List returns tenant-scoped variants using cursor pagination.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Variant, error) {
	query := r.DB(ctx).Model(&models.Variant{}).Where("tenant_id = ?", opts.tenantID)

	if opts.family != nil {
		query = query.Where("color_family = ?", *opts.family)
	}
	if opts.cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)

	var rows []models.Variant
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID returns one tenant-scoped variant.
func (r *Repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Variant, error) {
	var row models.Variant
	err := r.DB(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
