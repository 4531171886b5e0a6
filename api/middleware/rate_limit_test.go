package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/pkg/config"
	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
)

type fakeLimiterStore struct {
	allowed bool
	count   int64
	err     error
	scopes  []string
}

func (f *fakeLimiterStore) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	f.scopes = append(f.scopes, scope)
	return f.allowed, f.count, f.err
}

func TestTenantRateLimit(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	tenantID := uuid.New()
	cfg := config.RateLimitConfig{Window: time.Minute, TenantLimit: 5}

	serve := func(cfg config.RateLimitConfig, store *fakeLimiterStore, ctx context.Context) *httptest.ResponseRecorder {
		handler := TenantRateLimit(cfg, store, logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allowed", func(t *testing.T) {
		store := &fakeLimiterStore{allowed: true, count: 1}
		rec := serve(cfg, store, WithTenantID(context.Background(), tenantID))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(store.scopes) != 1 || store.scopes[0] != "tenant:"+tenantID.String() {
			t.Fatalf("expected tenant-scoped counter, got %v", store.scopes)
		}
	})

	t.Run("over limit", func(t *testing.T) {
		store := &fakeLimiterStore{allowed: false, count: 6}
		rec := serve(cfg, store, WithTenantID(context.Background(), tenantID))
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", rec.Code)
		}
	})

	t.Run("store failure lets request through", func(t *testing.T) {
		store := &fakeLimiterStore{err: errors.New("redis down")}
		rec := serve(cfg, store, WithTenantID(context.Background(), tenantID))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 when counter store fails, got %d", rec.Code)
		}
	})

	t.Run("disabled when limit is zero", func(t *testing.T) {
		store := &fakeLimiterStore{allowed: false}
		rec := serve(config.RateLimitConfig{Window: time.Minute}, store, WithTenantID(context.Background(), tenantID))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected passthrough with zero limit, got %d", rec.Code)
		}
		if len(store.scopes) != 0 {
			t.Fatalf("expected no counter calls, got %v", store.scopes)
		}
	})

	t.Run("no tenant in context", func(t *testing.T) {
		store := &fakeLimiterStore{allowed: false}
		rec := serve(cfg, store, context.Background())
		if rec.Code != http.StatusOK {
			t.Fatalf("expected passthrough without tenant, got %d", rec.Code)
		}
	})
}
