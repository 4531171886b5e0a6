package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/velvetcrown/wigmatch-backend/pkg/db/models"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
	pkgerrors "github.com/velvetcrown/wigmatch-backend/pkg/errors"
	pkgpagination "github.com/velvetcrown/wigmatch-backend/pkg/pagination"
)

func paramsWithLimit(limit int) pkgpagination.Params {
	return pkgpagination.Params{Limit: limit}
}

func paramsWithCursor(limit int, cursor string) pkgpagination.Params {
	return pkgpagination.Params{Limit: limit, Cursor: cursor}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Variant{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func seedVariant(t *testing.T, db *gorm.DB, tenantID uuid.UUID, handle string, family enums.ColorFamily, available bool, createdAt time.Time) models.Variant {
	t.Helper()
	v := models.Variant{
		ID:                uuid.New(),
		TenantID:          tenantID,
		BaseProductHandle: handle,
		Title:             handle,
		PriceCents:        12900,
		AvailableForSale:  available,
		ColorFamily:       family,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	return v
}

func TestRepositorySearchVariants(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	tenantID := uuid.New()
	otherTenant := uuid.New()
	now := time.Now().UTC()

	seedVariant(t, db, tenantID, "blonde-available", enums.ColorFamilyBlonde, true, now)
	seedVariant(t, db, tenantID, "blonde-soldout", enums.ColorFamilyBlonde, false, now.Add(time.Minute))
	seedVariant(t, db, tenantID, "black-available", enums.ColorFamilyBlack, true, now)
	seedVariant(t, db, otherTenant, "blonde-elsewhere", enums.ColorFamilyBlonde, true, now)

	rows, err := repo.SearchVariants(context.Background(), tenantID, enums.ColorFamilyBlonde, 10, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected sold-out stock excluded by default, got %d rows", len(rows))
	}
	if rows[0].BaseProductHandle != "blonde-available" {
		t.Fatalf("unexpected row %s", rows[0].BaseProductHandle)
	}

	withSoldOut, err := repo.SearchVariants(context.Background(), tenantID, enums.ColorFamilyBlonde, 10, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(withSoldOut) != 2 {
		t.Fatalf("expected 2 blonde rows with sold-out stock, got %d", len(withSoldOut))
	}
	if !withSoldOut[0].AvailableForSale {
		t.Fatal("available stock must sort first")
	}
	for _, row := range withSoldOut {
		if row.TenantID != tenantID {
			t.Fatal("tenant scoping leaked")
		}
		if row.ColorFamily != enums.ColorFamilyBlonde {
			t.Fatal("family filter leaked")
		}
	}

	limited, err := repo.SearchVariants(context.Background(), tenantID, enums.ColorFamilyBlonde, 1, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}
}

func TestServiceListVariants(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tenantID := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 5; i++ {
		seedVariant(t, db, tenantID, fmt.Sprintf("style-%d", i), enums.ColorFamilyBrunette, true, base.Add(time.Duration(i)*time.Minute))
	}

	t.Run("paginates with cursor", func(t *testing.T) {
		first, err := svc.ListVariants(context.Background(), ListParams{TenantID: tenantID, Params: paramsWithLimit(2)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(first.Items))
		}
		if first.Cursor == "" {
			t.Fatal("expected a next cursor")
		}
		if first.Items[0].BaseProductHandle != "style-4" {
			t.Fatalf("expected newest first, got %s", first.Items[0].BaseProductHandle)
		}

		second, err := svc.ListVariants(context.Background(), ListParams{TenantID: tenantID, Params: paramsWithCursor(2, first.Cursor)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(second.Items) != 2 {
			t.Fatalf("expected 2 items on second page, got %d", len(second.Items))
		}
		if second.Items[0].ID == first.Items[0].ID || second.Items[0].ID == first.Items[1].ID {
			t.Fatal("pages overlap")
		}
	})

	t.Run("family filter", func(t *testing.T) {
		family := enums.ColorFamilyBlonde
		out, err := svc.ListVariants(context.Background(), ListParams{TenantID: tenantID, Family: &family, Params: paramsWithLimit(10)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Items) != 0 {
			t.Fatalf("expected no blonde items, got %d", len(out.Items))
		}
	})

	t.Run("invalid cursor rejected", func(t *testing.T) {
		_, err := svc.ListVariants(context.Background(), ListParams{TenantID: tenantID, Params: paramsWithCursor(2, "garbage")})
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing tenant rejected", func(t *testing.T) {
		_, err := svc.ListVariants(context.Background(), ListParams{Params: paramsWithLimit(2)})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

type fakeImageResolver struct {
	err   error
	calls []string
}

func (f *fakeImageResolver) ImageURL(object string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.calls = append(f.calls, object)
	return "https://cdn.example.com/" + object, nil
}

func TestServiceListVariantsResolvesImages(t *testing.T) {
	db := newTestDB(t)
	resolver := &fakeImageResolver{}
	svc, err := NewService(NewRepository(db), resolver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tenantID := uuid.New()
	now := time.Now().UTC()

	withImage := seedVariant(t, db, tenantID, "imaged", enums.ColorFamilyBlack, true, now)
	key := "variants/imaged/hero.png"
	if err := db.Model(&models.Variant{}).Where("id = ?", withImage.ID).Update("image_key", key).Error; err != nil {
		t.Fatalf("set image key: %v", err)
	}
	seedVariant(t, db, tenantID, "bare", enums.ColorFamilyBlack, true, now.Add(-time.Minute))

	out, err := svc.ListVariants(context.Background(), ListParams{TenantID: tenantID, Params: paramsWithLimit(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out.Items))
	}
	if out.Items[0].ImageURL == nil || *out.Items[0].ImageURL != "https://cdn.example.com/"+key {
		t.Fatalf("expected resolved image url, got %v", out.Items[0].ImageURL)
	}
	if out.Items[1].ImageURL != nil {
		t.Fatal("variant without image key must not get a url")
	}
	if len(resolver.calls) != 1 {
		t.Fatalf("expected one resolver call, got %d", len(resolver.calls))
	}

	t.Run("resolver failure propagates", func(t *testing.T) {
		failing, err := NewService(NewRepository(db), &fakeImageResolver{err: errors.New("signer down")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := failing.ListVariants(context.Background(), ListParams{TenantID: tenantID, Params: paramsWithLimit(10)}); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestServiceRetrieve(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tenantID := uuid.New()
	seedVariant(t, db, tenantID, "red-style", enums.ColorFamilyRed, true, time.Now().UTC())

	rows, err := svc.Retrieve(context.Background(), tenantID, enums.ColorFamilyRed, 5, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	if _, err := svc.Retrieve(context.Background(), tenantID, enums.ColorFamily("neon"), 5, false); err == nil {
		t.Fatal("expected rejection of unknown family")
	}
	if _, err := svc.Retrieve(context.Background(), uuid.Nil, enums.ColorFamilyRed, 5, false); err == nil {
		t.Fatal("expected rejection of missing tenant")
	}
}

func TestServiceGetVariant(t *testing.T) {
	db := newTestDB(t)
	resolver := &fakeImageResolver{}
	svc, err := NewService(NewRepository(db), resolver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tenantID := uuid.New()
	seeded := seedVariant(t, db, tenantID, "bob-classic", enums.ColorFamilyBlack, true, time.Now().UTC())
	key := "variants/bob-classic/hero.png"
	if err := db.Model(&models.Variant{}).Where("id = ?", seeded.ID).Update("image_key", key).Error; err != nil {
		t.Fatalf("set image key: %v", err)
	}

	item, err := svc.GetVariant(context.Background(), tenantID, seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != seeded.ID {
		t.Fatalf("wrong variant returned: %s", item.ID)
	}
	if item.ImageURL == nil || *item.ImageURL != "https://cdn.example.com/"+key {
		t.Fatalf("expected resolved image url, got %v", item.ImageURL)
	}

	t.Run("unknown id maps to not found", func(t *testing.T) {
		_, err := svc.GetVariant(context.Background(), tenantID, uuid.New())
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("other tenant cannot read it", func(t *testing.T) {
		if _, err := svc.GetVariant(context.Background(), uuid.New(), seeded.ID); err == nil {
			t.Fatal("expected not found for foreign tenant")
		}
	})

	t.Run("missing ids rejected", func(t *testing.T) {
		if _, err := svc.GetVariant(context.Background(), uuid.Nil, seeded.ID); err == nil {
			t.Fatal("expected error for missing tenant")
		}
		if _, err := svc.GetVariant(context.Background(), tenantID, uuid.Nil); err == nil {
			t.Fatal("expected error for missing variant id")
		}
	})
}

type fakePopularityStore struct {
	values map[string]string
	err    error
}

func (f *fakePopularityStore) MGet(ctx context.Context, keys ...string) ([]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]any, len(keys))
	for i, k := range keys {
		if v, ok := f.values[k]; ok {
			out[i] = v
		}
	}
	return out, nil
}

func (f *fakePopularityStore) PopularityKey(tenantID, variantID string) string {
	return "wm:popularity:" + tenantID + ":" + variantID
}

func TestPopularityProvider(t *testing.T) {
	tenantID := uuid.New()
	known := uuid.New()
	missing := uuid.New()
	corrupt := uuid.New()

	store := &fakePopularityStore{values: map[string]string{
		"wm:popularity:" + tenantID.String() + ":" + known.String():   "0.82",
		"wm:popularity:" + tenantID.String() + ":" + corrupt.String(): "not-a-float",
	}}
	provider := NewPopularityProvider(store)

	scores, err := provider.BulkPopularity(context.Background(), tenantID, []uuid.UUID{known, missing, corrupt})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := scores[known]; got != 0.82 {
		t.Fatalf("expected 0.82, got %v", got)
	}
	if _, ok := scores[missing]; ok {
		t.Fatal("missing variant must stay absent")
	}
	if _, ok := scores[corrupt]; ok {
		t.Fatal("corrupt value must stay absent")
	}

	t.Run("store failure propagates", func(t *testing.T) {
		provider := NewPopularityProvider(&fakePopularityStore{err: errors.New("redis down")})
		if _, err := provider.BulkPopularity(context.Background(), tenantID, []uuid.UUID{known}); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		scores, err := provider.BulkPopularity(context.Background(), tenantID, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(scores) != 0 {
			t.Fatal("expected empty map")
		}
	})
}
