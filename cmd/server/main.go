package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/drivefetch/drivefetch/config"
	appmodel "github.com/drivefetch/drivefetch/internal/app/model"
	apprepository "github.com/drivefetch/drivefetch/internal/app/repository"
	appserver "github.com/drivefetch/drivefetch/internal/app/server"
	appservice "github.com/drivefetch/drivefetch/internal/app/service"
	"github.com/drivefetch/drivefetch/internal/infra/logger"
	infraNATS "github.com/drivefetch/drivefetch/internal/infra/nats"
	infraPostgres "github.com/drivefetch/drivefetch/internal/infra/postgres"
	infraPrometheus "github.com/drivefetch/drivefetch/internal/infra/prometheus"
	infraRedis "github.com/drivefetch/drivefetch/internal/infra/redis"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	isDev := os.Getenv("APP_ENV") != "production"
	log := logger.MustInit(logger.Config{
		Development: isDev,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	log.Info("Configuration loaded successfully",
		zap.Int("server_port", cfg.Server.Port),
		zap.Duration("converter_delay", cfg.Converter.Delay),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("postgres_db", cfg.Postgres.Database),
		zap.String("redis_host", cfg.Redis.Host),
		zap.Int("redis_port", cfg.Redis.Port),
		zap.String("nats_host", cfg.NATS.Host),
		zap.Int("nats_port", cfg.NATS.Port),
	)

	gormDB, err := infraPostgres.NewGorm(cfg.Postgres)
	if err != nil {
		log.Fatal("Failed to open GORM connection", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("Failed to access underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := infraPostgres.AutoMigrate(ctx, gormDB, &appmodel.Conversion{}); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	pool, err := infraPostgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pool.Close()

	log.Info("Connected to Postgres successfully")

	redisClient, err := infraRedis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("Connected to Redis successfully")

	natsConn, js, err := infraNATS.Connect(cfg.NATS)
	if err != nil {
		log.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer natsConn.Drain()
	log.Info("Connected to NATS successfully", zap.Bool("jetstream_ready", js != nil))

	if !isDev {
		promServer := infraPrometheus.NewServer(cfg.Metrics)
		go func() {
			log.Info("Starting Prometheus metrics server",
				zap.Int("port", cfg.Metrics.Port))
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Prometheus metrics server stopped unexpectedly", zap.Error(err))
			}
		}()
		defer func() {
			if err := promServer.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("Failed to close Prometheus server", zap.Error(err))
			}
		}()
	} else {
		log.Info("Skipping Prometheus metrics server in development mode")
	}

	conversionRepo := apprepository.NewConversionRepository(gormDB)

	consumer := appservice.NewHistoryConsumer(js, log, conversionRepo)
	if err := consumer.Start(); err != nil {
		log.Fatal("Failed to start conversion consumer", zap.Error(err))
	}

	pruner := appservice.NewHistoryPruner(log, conversionRepo, cfg.History.Retention)
	pruner.Start()
	defer pruner.Stop()

	notifier := appservice.NewNotifier(cfg.Notifier.DisplayWindow, cfg.Notifier.FadeDelay)
	theme := appservice.NewThemeService(appservice.NewRedisThemeStore(redisClient), log)
	converter := appservice.NewConverter(appservice.ConverterDeps{
		Delay:    cfg.Converter.Delay,
		Notifier: notifier,
		Recorder: appservice.NewHistoryPublisher(js),
		Logger:   log,
	})

	server := appserver.New(appserver.Dependencies{
		Logger:      log,
		Postgres:    pool,
		Redis:       redisClient,
		NATS:        natsConn,
		JetStream:   js,
		Conversions: conversionRepo,

		Converter: converter,
		Notifier:  notifier,
		Theme:     theme,

		SessionSecret: []byte(cfg.Server.SessionSecret),
		ListLimit:     cfg.History.ListLimit,
		DisplayWindow: cfg.Notifier.DisplayWindow,
		FadeDelay:     cfg.Notifier.FadeDelay,
	})

	if err := server.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatal("Fiber server exited", zap.Error(err))
	}
}
