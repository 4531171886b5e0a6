package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/api/responses"
	pkgerrors "github.com/velvetcrown/wigmatch-backend/pkg/errors"
	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
)

const tenantIDHeader = "X-Tenant-Id"

// Tenant resolves the calling tenant from the X-Tenant-Id header and injects
// it into the request context. Requests without a parseable tenant are
// rejected before they reach any handler.
func Tenant(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(tenantIDHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tenant header missing"))
				return
			}

			tenantID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tenant id"))
				return
			}

			ctx := WithTenantID(r.Context(), tenantID)
			if logg != nil {
				ctx = logg.WithTenantID(ctx, tenantID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
