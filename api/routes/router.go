package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weaponlions/ecommerce-server/api/controllers"
	"github.com/weaponlions/ecommerce-server/api/middleware"
	"github.com/weaponlions/ecommerce-server/api/responses"
	"github.com/weaponlions/ecommerce-server/internal/catalog"
	"github.com/weaponlions/ecommerce-server/internal/content"
	"github.com/weaponlions/ecommerce-server/internal/dashboard"
	"github.com/weaponlions/ecommerce-server/internal/media"
	"github.com/weaponlions/ecommerce-server/internal/schema"
	"github.com/weaponlions/ecommerce-server/pkg/config"
	"github.com/weaponlions/ecommerce-server/pkg/db"
	"github.com/weaponlions/ecommerce-server/pkg/logger"
	"github.com/weaponlions/ecommerce-server/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        db.Pinger
	Registry  *prometheus.Registry
	HTTP      *metrics.HTTPMetrics
	Media     media.Service
	Schema    schema.Service
	Catalog   catalog.Service
	Content   content.Service
	Dashboard dashboard.Service
	// UploadsDir, when set, is served read-only under /uploads/.
	UploadsDir string
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	responses.HideDetails(cfg.App.IsProd())

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)
	if deps.HTTP != nil {
		r.Use(middleware.Metrics(deps.HTTP))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	if deps.UploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	jsonBody := middleware.MaxBytes(cfg.App.MaxBodyBytes)
	// Multipart uploads need headroom beyond the asset itself.
	uploadBody := middleware.MaxBytes(cfg.Media.MaxUploadBytes + cfg.App.MaxBodyBytes)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Use(jsonBody)
			r.Get("/", controllers.ListProducts(deps.Catalog, logg))
			r.Get("/{id}", controllers.GetProduct(deps.Catalog, logg))
			r.Get("/{id}/variants", controllers.GetProductVariants(deps.Catalog, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(jsonBody)
			r.Get("/", controllers.ListCategories(deps.Schema, logg))
			r.Get("/{slug}", controllers.GetCategoryBySlug(deps.Schema, logg))
		})

		r.Route("/collections", func(r chi.Router) {
			r.Use(jsonBody)
			r.Get("/", controllers.ListCollections(deps.Content, logg))
			r.Get("/{id}/products", controllers.ListCollectionProducts(deps.Catalog, deps.Content, logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(jsonBody)
			r.Get("/", controllers.GetDashboard(deps.Dashboard, logg))
			r.Get("/sections/{key}", controllers.GetDashboardSection(deps.Dashboard, logg))
			r.Get("/recently-visited/{userId}", controllers.GetRecentlyVisited(deps.Dashboard, logg))
			r.Post("/visits", controllers.TrackVisit(deps.Dashboard, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/products", func(r chi.Router) {
				r.Use(jsonBody)
				r.Post("/", controllers.CreateProduct(deps.Catalog, logg))
				r.Put("/{id}", controllers.UpdateProduct(deps.Catalog, logg))
				r.Delete("/{id}", controllers.DeleteProduct(deps.Catalog, logg))
			})

			r.Route("/categories", func(r chi.Router) {
				r.Use(jsonBody)
				r.Get("/", controllers.ListAllCategories(deps.Schema, logg))
				r.Post("/", controllers.CreateCategory(deps.Schema, logg))
				r.Get("/{id}", controllers.GetCategory(deps.Schema, logg))
				r.Put("/{id}", controllers.UpdateCategory(deps.Schema, logg))
				r.Delete("/{id}", controllers.DeleteCategory(deps.Schema, logg))
				r.Get("/{id}/attributes", controllers.ListAttributes(deps.Schema, logg))
				r.Post("/{id}/attributes", controllers.CreateAttribute(deps.Schema, logg))
				r.Put("/{id}/attributes/{attributeId}", controllers.UpdateAttribute(deps.Schema, logg))
				r.Delete("/{id}/attributes/{attributeId}", controllers.DeleteAttribute(deps.Schema, logg))
			})

			r.Route("/media", func(r chi.Router) {
				r.Use(uploadBody)
				r.Post("/", controllers.UploadAsset(deps.Media, logg))
				r.Get("/", controllers.ListAssets(deps.Media, logg))
				r.Get("/entity/{entityType}/{entityId}", controllers.ListEntityUsages(deps.Media, logg))
				r.Get("/{id}", controllers.GetAsset(deps.Media, logg))
				r.Put("/{id}", controllers.UpdateAsset(deps.Media, logg))
				r.Delete("/{id}", controllers.DeleteAsset(deps.Media, logg))
				r.Get("/{id}/usages", controllers.ListAssetUsages(deps.Media, logg))
				r.Post("/{id}/usages", controllers.LinkAssetUsage(deps.Media, logg))
				r.Delete("/usages/{usageId}", controllers.UnlinkAssetUsage(deps.Media, logg))
			})

			r.Route("/navbar-links", func(r chi.Router) {
				r.Use(jsonBody)
				r.Get("/", controllers.ListNavbarLinks(deps.Content, logg))
				r.Post("/", controllers.CreateNavbarLink(deps.Content, logg))
				r.Put("/{id}", controllers.UpdateNavbarLink(deps.Content, logg))
				r.Delete("/{id}", controllers.DeleteNavbarLink(deps.Content, logg))
			})

			r.Route("/carousel-slides", func(r chi.Router) {
				r.Use(jsonBody)
				r.Get("/", controllers.ListCarouselSlides(deps.Content, logg))
				r.Post("/", controllers.CreateCarouselSlide(deps.Content, logg))
				r.Put("/{id}", controllers.UpdateCarouselSlide(deps.Content, logg))
				r.Delete("/{id}", controllers.DeleteCarouselSlide(deps.Content, logg))
			})

			r.Route("/footer-links", func(r chi.Router) {
				r.Use(jsonBody)
				r.Get("/", controllers.ListFooterLinks(deps.Content, logg))
				r.Post("/", controllers.CreateFooterLink(deps.Content, logg))
				r.Put("/{id}", controllers.UpdateFooterLink(deps.Content, logg))
				r.Delete("/{id}", controllers.DeleteFooterLink(deps.Content, logg))
			})

			r.Route("/social-icons", func(r chi.Router) {
				r.Use(jsonBody)
				r.Get("/", controllers.ListSocialIcons(deps.Content, logg))
				r.Post("/", controllers.CreateSocialIcon(deps.Content, logg))
				r.Put("/{id}", controllers.UpdateSocialIcon(deps.Content, logg))
				r.Delete("/{id}", controllers.DeleteSocialIcon(deps.Content, logg))
			})

			r.Route("/collections", func(r chi.Router) {
				r.Use(jsonBody)
				r.Get("/", controllers.ListAllCollections(deps.Content, logg))
				r.Post("/", controllers.CreateCollection(deps.Content, logg))
				r.Put("/{id}", controllers.UpdateCollection(deps.Content, logg))
				r.Delete("/{id}", controllers.DeleteCollection(deps.Content, logg))
				r.Post("/{id}/products", controllers.AddCollectionProduct(deps.Catalog, logg))
				r.Delete("/{id}/products/{productId}", controllers.RemoveCollectionProduct(deps.Catalog, logg))
			})

			r.Route("/dashboard-sections", func(r chi.Router) {
				r.Use(jsonBody)
				r.Get("/", controllers.ListDashboardSections(deps.Content, logg))
				r.Put("/{id}", controllers.UpdateDashboardSection(deps.Content, logg))
			})
		})
	})

	return r
}
