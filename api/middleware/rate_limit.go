package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/api/responses"
	"github.com/velvetcrown/wigmatch-backend/pkg/config"
	pkgerrors "github.com/velvetcrown/wigmatch-backend/pkg/errors"
	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// TenantRateLimit enforces a fixed-window request budget per tenant. It runs
// after the Tenant middleware so the tenant id is already in the context. A
// failing counter store lets the request through; throttling is best-effort.
func TenantRateLimit(cfg config.RateLimitConfig, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg.TenantLimit <= 0 || cfg.Window <= 0 || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tenantID := TenantIDFromContext(ctx)
			if tenantID == uuid.Nil {
				next.ServeHTTP(w, r)
				return
			}

			scope := fmt.Sprintf("tenant:%s", tenantID)
			allowed, count, err := store.FixedWindowAllow(ctx, scope, int64(cfg.TenantLimit), cfg.Window)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "scope", scope), "rate limit store unavailable, allowing request")
				}
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"scope": scope,
						"count": count,
						"limit": cfg.TenantLimit,
					})
					logg.Warn(ctx, "tenant rate limited")
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many requests"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
