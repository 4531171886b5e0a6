package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/velvetcrown/wigmatch-backend/api/controllers"
	"github.com/velvetcrown/wigmatch-backend/api/routes"
	"github.com/velvetcrown/wigmatch-backend/internal/catalog"
	"github.com/velvetcrown/wigmatch-backend/internal/events"
	"github.com/velvetcrown/wigmatch-backend/internal/matchconfig"
	"github.com/velvetcrown/wigmatch-backend/internal/recommend"
	"github.com/velvetcrown/wigmatch-backend/pkg/config"
	"github.com/velvetcrown/wigmatch-backend/pkg/db"
	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
	"github.com/velvetcrown/wigmatch-backend/pkg/metrics"
	"github.com/velvetcrown/wigmatch-backend/pkg/migrate"
	"github.com/velvetcrown/wigmatch-backend/pkg/pubsub"
	"github.com/velvetcrown/wigmatch-backend/pkg/redis"
	"github.com/velvetcrown/wigmatch-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var psClient *pubsub.Client
	publisher := events.NewPublisher(nil)
	if cfg.PubSub.Enabled {
		psClient, err = pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := psClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		publisher = events.NewPublisher(psClient.RecommendationPublisher())
	}

	registry := prometheus.NewRegistry()
	pipeline := metrics.NewPipelineMetrics(registry)

	configSvc, err := matchconfig.NewService(matchconfig.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create config service", err)
		os.Exit(1)
	}

	var gcsClient *gcs.Client
	var imageResolver catalog.ImageResolver
	if cfg.GCS.Enabled {
		gcsClient, err = gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap gcs", err)
			os.Exit(1)
		}
		imageResolver = gcsClient
	}

	catalogSvc, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), imageResolver)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	popularity := catalog.NewPopularityProvider(redisClient)

	recommendSvc, err := recommend.NewService(
		catalogSvc,
		configSvc,
		popularity,
		publisher,
		pipeline,
		logg,
		cfg.Matching,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create recommendation service", err)
		os.Exit(1)
	}

	pingers := map[string]controllers.Pinger{
		"postgres": dbClient,
		"redis":    redisClient,
	}
	if psClient != nil {
		pingers["pubsub"] = psClient
	}
	if gcsClient != nil {
		pingers["gcs"] = gcsClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:           cfg,
			Logger:           logg,
			Recommendations:  recommendSvc,
			Catalog:          catalogSvc,
			RateLimiter:      redisClient,
			MetricsGatherer:  registry,
			ReadinessPingers: pingers,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
