package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/api/middleware"
	"github.com/velvetcrown/wigmatch-backend/internal/catalog"
	"github.com/velvetcrown/wigmatch-backend/pkg/db/models"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
	pkgerrors "github.com/velvetcrown/wigmatch-backend/pkg/errors"
	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
)

type stubCatalogService struct {
	lastParams catalog.ListParams
	result     *catalog.ListResult
	item       *catalog.ListItem
	lastGetID  uuid.UUID
	err        error
}

func (s *stubCatalogService) Retrieve(ctx context.Context, tenantID uuid.UUID, family enums.ColorFamily, limit int, includeUnavailable bool) ([]models.Variant, error) {
	panic("unimplemented")
}

func (s *stubCatalogService) ListVariants(ctx context.Context, params catalog.ListParams) (*catalog.ListResult, error) {
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &catalog.ListResult{Items: []catalog.ListItem{}}, nil
}

func (s *stubCatalogService) GetVariant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.ListItem, error) {
	s.lastGetID = id
	if s.err != nil {
		return nil, s.err
	}
	if s.item != nil {
		return s.item, nil
	}
	return &catalog.ListItem{ID: id}, nil
}

func TestCatalogVariants(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	tenantID := uuid.New()

	makeRequest := func(ctx context.Context, target string, stub *stubCatalogService) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()
		CatalogVariants(stub, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing tenant", func(t *testing.T) {
		rec := makeRequest(context.Background(), "/api/v1/catalog/variants", &stubCatalogService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 when tenant missing, got %d", rec.Code)
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		ctx := middleware.WithTenantID(context.Background(), tenantID)
		rec := makeRequest(ctx, "/api/v1/catalog/variants?limit=abc", &stubCatalogService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for non-numeric limit, got %d", rec.Code)
		}
	})

	t.Run("invalid family", func(t *testing.T) {
		ctx := middleware.WithTenantID(context.Background(), tenantID)
		rec := makeRequest(ctx, "/api/v1/catalog/variants?family=neon", &stubCatalogService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown family, got %d", rec.Code)
		}
	})

	t.Run("success with filters", func(t *testing.T) {
		ctx := middleware.WithTenantID(context.Background(), tenantID)
		stub := &stubCatalogService{}
		rec := makeRequest(ctx, "/api/v1/catalog/variants?limit=10&family=blonde&cursor=abc123", stub)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastParams.TenantID != tenantID {
			t.Fatalf("expected tenant %s forwarded, got %s", tenantID, stub.lastParams.TenantID)
		}
		if stub.lastParams.Limit != 10 {
			t.Fatalf("expected limit 10, got %d", stub.lastParams.Limit)
		}
		if stub.lastParams.Cursor != "abc123" {
			t.Fatalf("expected cursor forwarded, got %q", stub.lastParams.Cursor)
		}
		if stub.lastParams.Family == nil || *stub.lastParams.Family != enums.ColorFamilyBlonde {
			t.Fatalf("expected blonde filter, got %v", stub.lastParams.Family)
		}
	})

	t.Run("no family filter", func(t *testing.T) {
		ctx := middleware.WithTenantID(context.Background(), tenantID)
		stub := &stubCatalogService{}
		rec := makeRequest(ctx, "/api/v1/catalog/variants", stub)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.lastParams.Family != nil {
			t.Fatalf("expected no family filter, got %v", *stub.lastParams.Family)
		}
	})
}

func TestCatalogVariant(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	tenantID := uuid.New()

	makeRequest := func(ctx context.Context, id string, stub *stubCatalogService) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/variants/"+id, nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("variantID", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()
		CatalogVariant(stub, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing tenant", func(t *testing.T) {
		rec := makeRequest(context.Background(), uuid.NewString(), &stubCatalogService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 when tenant missing, got %d", rec.Code)
		}
	})

	t.Run("invalid variant id", func(t *testing.T) {
		ctx := middleware.WithTenantID(context.Background(), tenantID)
		rec := makeRequest(ctx, "not-a-uuid", &stubCatalogService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad id, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctx := middleware.WithTenantID(context.Background(), tenantID)
		stub := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")}
		rec := makeRequest(ctx, uuid.NewString(), stub)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctx := middleware.WithTenantID(context.Background(), tenantID)
		variantID := uuid.New()
		stub := &stubCatalogService{}
		rec := makeRequest(ctx, variantID.String(), stub)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastGetID != variantID {
			t.Fatalf("expected variant %s forwarded, got %s", variantID, stub.lastGetID)
		}
	})
}
