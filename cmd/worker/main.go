package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/joho/godotenv"

	"github.com/velvetcrown/wigmatch-backend/internal/consumers/engagement"
	"github.com/velvetcrown/wigmatch-backend/pkg/config"
	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
	"github.com/velvetcrown/wigmatch-backend/pkg/pubsub"
	"github.com/velvetcrown/wigmatch-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "worker"

	logg = logger.New(logger.Options{
		ServiceName: "worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if !cfg.PubSub.Enabled {
		logg.Error(context.Background(), "worker requires pubsub", errors.New("set WIGMATCH_PUBSUB_ENABLED=true"))
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

	psClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := psClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub", err)
		}
	}()

	if err := psClient.VerifySubscription(context.Background(), cfg.PubSub.EngagementSubscription); err != nil {
		logg.Error(context.Background(), "engagement subscription unavailable", err)
		os.Exit(1)
	}

	consumer, err := engagement.NewConsumer(redisClient, logg, 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create engagement consumer", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"serviceKind":  cfg.Service.Kind,
		"subscription": cfg.PubSub.EngagementSubscription,
	})
	logg.Info(ctx, "starting engagement worker")

	subscriber := psClient.EngagementSubscriber()
	err = subscriber.Receive(ctx, func(msgCtx context.Context, msg *gcppubsub.Message) {
		if err := consumer.Process(msgCtx, msg.Data); err != nil {
			logg.Error(msgCtx, "failed to process engagement message", err)
			msg.Nack()
			return
		}
		msg.Ack()
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "engagement worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "engagement worker shutting down gracefully")
}
