package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velvetcrown/wigmatch-backend/pkg/db/models"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
	pkgerrors "github.com/velvetcrown/wigmatch-backend/pkg/errors"
	pkgpagination "github.com/velvetcrown/wigmatch-backend/pkg/pagination"
)

type variantRepository interface {
	SearchVariants(ctx context.Context, tenantID uuid.UUID, family enums.ColorFamily, limit int, includeUnavailable bool) ([]models.Variant, error)
	List(ctx context.Context, opts listQuery) ([]models.Variant, error)
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Variant, error)
}

// ImageResolver turns stored object keys into URLs the storefront can render.
type ImageResolver interface {
	ImageURL(object string) (string, error)
}

// Service exposes catalog retrieval for the matching pipeline and paginated
// browsing for the API surface.
type Service interface {
	// Retrieve returns at most limit variants of one color family. It backs
	// the per-partition fan-out in the recommendation pipeline. Sold-out
	// variants only appear when includeUnavailable is set.
	Retrieve(ctx context.Context, tenantID uuid.UUID, family enums.ColorFamily, limit int, includeUnavailable bool) ([]models.Variant, error)
	ListVariants(ctx context.Context, params ListParams) (*ListResult, error)
	GetVariant(ctx context.Context, tenantID, id uuid.UUID) (*ListItem, error)
}

type service struct {
	repo   variantRepository
	images ImageResolver
}

// NewService builds a catalog service backed by the provided repository. The
// image resolver is optional; without one listings carry bare object keys.
func NewService(repo variantRepository, images ImageResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, images: images}, nil
}

func (s *service) Retrieve(ctx context.Context, tenantID uuid.UUID, family enums.ColorFamily, limit int, includeUnavailable bool) ([]models.Variant, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if !family.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown color family %q", family))
	}
	if limit <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "retrieval limit must be positive")
	}

	rows, err := s.repo.SearchVariants(ctx, tenantID, family, limit, includeUnavailable)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search variants")
	}
	return rows, nil
}

func (s *service) ListVariants(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if params.Family != nil && !params.Family.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown color family %q", *params.Family))
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{
		tenantID: params.TenantID,
		family:   params.Family,
		limit:    pkgpagination.LimitWithBuffer(params.Limit),
	}
	if params.Cursor != "" {
		cursor, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	rows, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list variants")
	}

	nextCursor := ""
	if len(rows) > limit {
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: rows[limit].CreatedAt,
			ID:        rows[limit].ID,
		})
		rows = rows[:limit]
	}

	items := make([]ListItem, len(rows))
	for i, row := range rows {
		items[i] = toListItem(row)
		if s.images == nil || row.ImageKey == nil || *row.ImageKey == "" {
			continue
		}
		imageURL, err := s.images.ImageURL(*row.ImageKey)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve image url")
		}
		items[i].ImageURL = &imageURL
	}

	return &ListResult{
		Items:  items,
		Cursor: nextCursor,
	}, nil
}

func (s *service) GetVariant(ctx context.Context, tenantID, id uuid.UUID) (*ListItem, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id required")
	}

	row, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find variant")
	}

	item := toListItem(*row)
	if s.images != nil && row.ImageKey != nil && *row.ImageKey != "" {
		imageURL, err := s.images.ImageURL(*row.ImageKey)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve image url")
		}
		item.ImageURL = &imageURL
	}
	return &item, nil
}
