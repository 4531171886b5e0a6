package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/api/middleware"
	"github.com/velvetcrown/wigmatch-backend/api/responses"
	"github.com/velvetcrown/wigmatch-backend/api/validators"
	"github.com/velvetcrown/wigmatch-backend/internal/catalog"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
	pkgerrors "github.com/velvetcrown/wigmatch-backend/pkg/errors"
	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
	"github.com/velvetcrown/wigmatch-backend/pkg/pagination"
)

// CatalogVariants lists the tenant's wig variants with cursor pagination and
// an optional color family filter.
func CatalogVariants(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		if tenantID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tenant context missing"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := catalog.ListParams{
			TenantID: tenantID,
			Params: pagination.Params{
				Limit:  limit,
				Cursor: validators.QueryString(r, "cursor"),
			},
		}

		if raw := validators.QueryString(r, "family"); raw != "" {
			family, err := enums.ParseColorFamily(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid color family"))
				return
			}
			params.Family = &family
		}

		result, err := svc.ListVariants(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CatalogVariant returns one tenant-scoped variant by id.
func CatalogVariant(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		if tenantID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tenant context missing"))
			return
		}

		variantID, err := uuid.Parse(chi.URLParam(r, "variantID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id"))
			return
		}

		item, err := svc.GetVariant(r.Context(), tenantID, variantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}
