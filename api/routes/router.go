package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velvetcrown/wigmatch-backend/api/controllers"
	"github.com/velvetcrown/wigmatch-backend/api/middleware"
	"github.com/velvetcrown/wigmatch-backend/internal/catalog"
	"github.com/velvetcrown/wigmatch-backend/internal/recommend"
	"github.com/velvetcrown/wigmatch-backend/pkg/config"
	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
	"github.com/velvetcrown/wigmatch-backend/pkg/redis"
)

// Deps carries everything the router needs; optional entries may be nil.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	Recommendations  recommend.Service
	Catalog          catalog.Service
	RateLimiter      *redis.Client
	MetricsGatherer  prometheus.Gatherer
	ReadinessPingers map[string]controllers.Pinger
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.ReadinessPingers))
	})

	gatherer := deps.MetricsGatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Tenant(deps.Logger))
		if deps.RateLimiter != nil {
			r.Use(middleware.TenantRateLimit(deps.Config.RateLimit, deps.RateLimiter, deps.Logger))
		}

		r.Get("/ping", controllers.TenantPing())
		r.Post("/recommendations", controllers.Recommendations(deps.Recommendations, deps.Logger))
		r.Get("/catalog/variants", controllers.CatalogVariants(deps.Catalog, deps.Logger))
		r.Get("/catalog/variants/{variantID}", controllers.CatalogVariant(deps.Catalog, deps.Logger))
	})

	return r
}
