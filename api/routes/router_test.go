package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/weaponlions/ecommerce-server/internal/catalog"
	"github.com/weaponlions/ecommerce-server/internal/content"
	"github.com/weaponlions/ecommerce-server/internal/dashboard"
	"github.com/weaponlions/ecommerce-server/internal/media"
	"github.com/weaponlions/ecommerce-server/internal/schema"
	"github.com/weaponlions/ecommerce-server/pkg/config"
	"github.com/weaponlions/ecommerce-server/pkg/db/models"
	"github.com/weaponlions/ecommerce-server/pkg/logger"
	"github.com/weaponlions/ecommerce-server/pkg/metrics"
	"github.com/weaponlions/ecommerce-server/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubCatalogService struct{}

func (stubCatalogService) Create(context.Context, catalog.CreateProductInput) (*catalog.ProductDetailDTO, error) {
	return &catalog.ProductDetailDTO{}, nil
}

func (stubCatalogService) Update(context.Context, uuid.UUID, catalog.UpdateProductInput) (*catalog.ProductDetailDTO, error) {
	return &catalog.ProductDetailDTO{}, nil
}

func (stubCatalogService) Delete(context.Context, uuid.UUID) error { return nil }

func (stubCatalogService) Get(context.Context, uuid.UUID) (*catalog.ProductDetailDTO, error) {
	return &catalog.ProductDetailDTO{}, nil
}

func (stubCatalogService) List(context.Context, catalog.ListQuery) (pagination.Page[catalog.ProductDTO], error) {
	return pagination.NewPage([]catalog.ProductDTO{}, 0, pagination.Params{Page: 1, PageSize: pagination.DefaultPageSize}), nil
}

func (stubCatalogService) GetVariantSiblings(context.Context, uuid.UUID) ([]catalog.VariantSummary, error) {
	return nil, nil
}

func (stubCatalogService) AddProductToCollection(context.Context, uuid.UUID, uuid.UUID, int) error {
	return nil
}

func (stubCatalogService) RemoveProductFromCollection(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (stubCatalogService) ListCollectionProducts(context.Context, uuid.UUID) ([]catalog.ProductDTO, error) {
	return nil, nil
}

type stubSchemaService struct{}

func (stubSchemaService) CreateCategory(context.Context, schema.CategoryInput) (*models.Category, error) {
	return &models.Category{}, nil
}

func (stubSchemaService) UpdateCategory(context.Context, uuid.UUID, schema.CategoryInput) (*models.Category, error) {
	return &models.Category{}, nil
}

func (stubSchemaService) DeleteCategory(context.Context, uuid.UUID) error { return nil }

func (stubSchemaService) GetCategory(context.Context, uuid.UUID) (*models.Category, error) {
	return &models.Category{}, nil
}

func (stubSchemaService) GetCategoryBySlug(context.Context, string) (*models.Category, error) {
	return &models.Category{}, nil
}

func (stubSchemaService) ListCategories(context.Context, bool) ([]models.Category, error) {
	return []models.Category{}, nil
}

func (stubSchemaService) CreateAttribute(context.Context, uuid.UUID, schema.AttributeInput) (*models.CategoryAttribute, error) {
	return &models.CategoryAttribute{}, nil
}

func (stubSchemaService) UpdateAttribute(context.Context, uuid.UUID, schema.AttributeInput) (*models.CategoryAttribute, error) {
	return &models.CategoryAttribute{}, nil
}

func (stubSchemaService) DeleteAttribute(context.Context, uuid.UUID) error { return nil }

func (stubSchemaService) ListAttributes(context.Context, uuid.UUID) ([]models.CategoryAttribute, error) {
	return nil, nil
}

type stubMediaService struct{}

func (stubMediaService) Upload(context.Context, media.UploadInput) (*models.MediaAsset, error) {
	return &models.MediaAsset{}, nil
}

func (stubMediaService) List(context.Context, media.ListInput) (pagination.Page[media.AssetWithUsage], error) {
	return pagination.NewPage([]media.AssetWithUsage{}, 0, pagination.Params{Page: 1, PageSize: pagination.DefaultPageSize}), nil
}

func (stubMediaService) Get(context.Context, uuid.UUID) (*media.AssetWithUsage, error) {
	return &media.AssetWithUsage{}, nil
}

func (stubMediaService) UpdateMetadata(context.Context, uuid.UUID, media.UpdateInput) (*models.MediaAsset, error) {
	return &models.MediaAsset{}, nil
}

func (stubMediaService) Delete(context.Context, uuid.UUID) error { return nil }

func (stubMediaService) Require(context.Context, uuid.UUID) (*models.MediaAsset, error) {
	return &models.MediaAsset{}, nil
}

func (stubMediaService) LinkUsage(context.Context, *gorm.DB, uuid.UUID, string, uuid.UUID, string) error {
	return nil
}

func (stubMediaService) UnlinkUsageByID(context.Context, uuid.UUID) error { return nil }

func (stubMediaService) UnlinkAllForEntity(context.Context, *gorm.DB, string, uuid.UUID) error {
	return nil
}

func (stubMediaService) UsagesForAsset(context.Context, uuid.UUID) ([]models.MediaUsage, error) {
	return nil, nil
}

func (stubMediaService) UsagesForEntity(context.Context, string, uuid.UUID) ([]models.MediaUsage, error) {
	return nil, nil
}

type stubContentService struct{}

func (stubContentService) CreateNavbarLink(context.Context, content.NavbarLinkInput) (*models.NavbarLink, error) {
	return &models.NavbarLink{}, nil
}

func (stubContentService) UpdateNavbarLink(context.Context, uuid.UUID, content.NavbarLinkInput) (*models.NavbarLink, error) {
	return &models.NavbarLink{}, nil
}

func (stubContentService) DeleteNavbarLink(context.Context, uuid.UUID) error { return nil }

func (stubContentService) ListNavbarLinks(context.Context, bool) ([]models.NavbarLink, error) {
	return []models.NavbarLink{}, nil
}

func (stubContentService) CreateCarouselSlide(context.Context, content.CarouselSlideInput) (*models.CarouselSlide, error) {
	return &models.CarouselSlide{}, nil
}

func (stubContentService) UpdateCarouselSlide(context.Context, uuid.UUID, content.CarouselSlideInput) (*models.CarouselSlide, error) {
	return &models.CarouselSlide{}, nil
}

func (stubContentService) DeleteCarouselSlide(context.Context, uuid.UUID) error { return nil }

func (stubContentService) ListCarouselSlides(context.Context, bool) ([]models.CarouselSlide, error) {
	return nil, nil
}

func (stubContentService) CreateFooterLink(context.Context, content.FooterLinkInput) (*models.FooterLink, error) {
	return &models.FooterLink{}, nil
}

func (stubContentService) UpdateFooterLink(context.Context, uuid.UUID, content.FooterLinkInput) (*models.FooterLink, error) {
	return &models.FooterLink{}, nil
}

func (stubContentService) DeleteFooterLink(context.Context, uuid.UUID) error { return nil }

func (stubContentService) ListFooterLinks(context.Context, bool) ([]models.FooterLink, error) {
	return nil, nil
}

func (stubContentService) CreateSocialIcon(context.Context, content.SocialIconInput) (*models.SocialIcon, error) {
	return &models.SocialIcon{}, nil
}

func (stubContentService) UpdateSocialIcon(context.Context, uuid.UUID, content.SocialIconInput) (*models.SocialIcon, error) {
	return &models.SocialIcon{}, nil
}

func (stubContentService) DeleteSocialIcon(context.Context, uuid.UUID) error { return nil }

func (stubContentService) ListSocialIcons(context.Context, bool) ([]models.SocialIcon, error) {
	return nil, nil
}

func (stubContentService) CreateCollection(context.Context, content.CollectionInput) (*models.Collection, error) {
	return &models.Collection{}, nil
}

func (stubContentService) UpdateCollection(context.Context, uuid.UUID, content.CollectionInput) (*models.Collection, error) {
	return &models.Collection{}, nil
}

func (stubContentService) DeleteCollection(context.Context, uuid.UUID) error { return nil }

func (stubContentService) ListCollections(context.Context, bool) ([]models.Collection, error) {
	return []models.Collection{}, nil
}

func (stubContentService) ListTopCollections(context.Context, int) ([]models.Collection, error) {
	return nil, nil
}

func (stubContentService) VisitCollection(context.Context, uuid.UUID) error { return nil }

func (stubContentService) ListDashboardSections(context.Context, bool) ([]models.DashboardSection, error) {
	return nil, nil
}

func (stubContentService) UpdateDashboardSection(context.Context, uuid.UUID, content.DashboardSectionInput) (*models.DashboardSection, error) {
	return &models.DashboardSection{}, nil
}

type stubDashboardService struct{}

func (stubDashboardService) Assemble(context.Context, string) (*dashboard.DashboardDTO, error) {
	return &dashboard.DashboardDTO{}, nil
}

func (stubDashboardService) SectionPayload(context.Context, string, string) (any, error) {
	return nil, nil
}

func (stubDashboardService) RecentlyVisited(context.Context, string) ([]catalog.ProductDTO, error) {
	return []catalog.ProductDTO{}, nil
}

func (stubDashboardService) TrackVisit(context.Context, string, uuid.UUID) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Env:          "dev",
			Port:         "0",
			MaxBodyBytes: 1 << 20,
		},
		Media: config.MediaConfig{MaxUploadBytes: 1 << 20},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "router-test", Level: zerolog.ErrorLevel, Output: io.Discard})
	registry := prometheus.NewRegistry()
	return NewRouter(Deps{
		Config:    cfg,
		Logger:    logg,
		DB:        stubPinger{},
		Registry:  registry,
		HTTP:      metrics.NewHTTPMetrics(registry),
		Media:     stubMediaService{},
		Schema:    stubSchemaService{},
		Catalog:   stubCatalogService{},
		Content:   stubContentService{},
		Dashboard: stubDashboardService{},
	})
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := newTestRouter(testConfig())

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusOK, resp.Code, path)
	}
}

func TestRouterPublicRoutesWired(t *testing.T) {
	router := newTestRouter(testConfig())

	paths := []string{
		"/api/products",
		"/api/categories",
		"/api/collections",
		"/api/dashboard",
		"/api/dashboard/recently-visited/user-1",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusOK, resp.Code, path)

		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope), path)
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRouterInvalidPathIDRejected(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/products/not-a-uuid", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRouterMetricsExposed(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
}
