package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weaponlions/ecommerce-server/internal/catalog"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
	"github.com/weaponlions/ecommerce-server/pkg/logger"
	"github.com/weaponlions/ecommerce-server/pkg/pagination"
)

type stubCatalogService struct {
	lastQuery catalog.ListQuery
}

func (s *stubCatalogService) Create(context.Context, catalog.CreateProductInput) (*catalog.ProductDetailDTO, error) {
	return &catalog.ProductDetailDTO{}, nil
}

func (s *stubCatalogService) Update(context.Context, uuid.UUID, catalog.UpdateProductInput) (*catalog.ProductDetailDTO, error) {
	return &catalog.ProductDetailDTO{}, nil
}

func (s *stubCatalogService) Delete(context.Context, uuid.UUID) error { return nil }

func (s *stubCatalogService) Get(context.Context, uuid.UUID) (*catalog.ProductDetailDTO, error) {
	return &catalog.ProductDetailDTO{}, nil
}

func (s *stubCatalogService) List(_ context.Context, query catalog.ListQuery) (pagination.Page[catalog.ProductDTO], error) {
	s.lastQuery = query
	return pagination.NewPage([]catalog.ProductDTO{}, 0, query.Page), nil
}

func (s *stubCatalogService) GetVariantSiblings(context.Context, uuid.UUID) ([]catalog.VariantSummary, error) {
	return nil, nil
}

func (s *stubCatalogService) AddProductToCollection(context.Context, uuid.UUID, uuid.UUID, int) error {
	return nil
}

func (s *stubCatalogService) RemoveProductFromCollection(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (s *stubCatalogService) ListCollectionProducts(context.Context, uuid.UUID) ([]catalog.ProductDTO, error) {
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error"), Output: io.Discard})
}

func mustDecimal(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	value, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", raw, err)
	}
	return value
}

func TestListProductsQueryMapping(t *testing.T) {
	logg := testLogger()
	categoryID := uuid.New()

	t.Run("full query", func(t *testing.T) {
		svc := &stubCatalogService{}
		target := "/api/products?category_id=" + categoryID.String() +
			"&min_price=10.50&max_price=99&search=hoodie&sort=price&order=desc" +
			"&page=2&page_size=24&attr_color=Red&attr_size=M"
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		ListProducts(svc, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		q := svc.lastQuery
		if q.CategoryID == nil || *q.CategoryID != categoryID {
			t.Fatalf("category id not mapped: %v", q.CategoryID)
		}
		if q.MinPrice == nil || !q.MinPrice.Equal(mustDecimal(t, "10.50")) {
			t.Fatalf("min price not mapped: %v", q.MinPrice)
		}
		if q.MaxPrice == nil || !q.MaxPrice.Equal(mustDecimal(t, "99")) {
			t.Fatalf("max price not mapped: %v", q.MaxPrice)
		}
		if q.Search != "hoodie" {
			t.Fatalf("search not mapped: %q", q.Search)
		}
		if q.Sort != enums.ProductSortPrice || !q.Descending {
			t.Fatalf("sort not mapped: %v desc=%v", q.Sort, q.Descending)
		}
		if q.Page.Page != 2 || q.Page.PageSize != 24 {
			t.Fatalf("pagination not mapped: %+v", q.Page)
		}
		if q.Attributes["color"] != "Red" || q.Attributes["size"] != "M" {
			t.Fatalf("attribute filters not mapped: %v", q.Attributes)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		svc := &stubCatalogService{}
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		rec := httptest.NewRecorder()
		ListProducts(svc, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		q := svc.lastQuery
		if q.Sort != enums.ProductSortTrending || q.Descending {
			t.Fatalf("expected trending ascending default, got %v desc=%v", q.Sort, q.Descending)
		}
		if q.Page.Page != 1 || q.Page.PageSize != pagination.DefaultPageSize {
			t.Fatalf("unexpected default pagination: %+v", q.Page)
		}
		if q.Attributes != nil {
			t.Fatalf("expected nil attribute filters, got %v", q.Attributes)
		}
	})

	t.Run("unknown sort falls back to trending", func(t *testing.T) {
		svc := &stubCatalogService{}
		req := httptest.NewRequest(http.MethodGet, "/api/products?sort=bogus", nil)
		rec := httptest.NewRecorder()
		ListProducts(svc, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if svc.lastQuery.Sort != enums.ProductSortTrending {
			t.Fatalf("expected trending fallback, got %v", svc.lastQuery.Sort)
		}
	})

	t.Run("invalid category id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products?category_id=nope", nil)
		rec := httptest.NewRecorder()
		ListProducts(&stubCatalogService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("paging inputs clamp instead of failing", func(t *testing.T) {
		svc := &stubCatalogService{}
		req := httptest.NewRequest(http.MethodGet, "/api/products?page=0&page_size=5000", nil)
		rec := httptest.NewRecorder()
		ListProducts(svc, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if svc.lastQuery.Page.Page != 1 || svc.lastQuery.Page.PageSize != pagination.MaxPageSize {
			t.Fatalf("expected clamped paging, got %+v", svc.lastQuery.Page)
		}
	})

	t.Run("non-numeric page size", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products?page_size=lots", nil)
		rec := httptest.NewRecorder()
		ListProducts(&stubCatalogService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGetProductInvalidID(t *testing.T) {
	logg := testLogger()
	req := httptest.NewRequest(http.MethodGet, "/api/products/not-a-uuid", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	GetProduct(&stubCatalogService{}, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
	}
}
