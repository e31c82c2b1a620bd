package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecosphere/ecosphere-api/internal/api"
	"github.com/ecosphere/ecosphere-api/internal/core/service"
	"github.com/ecosphere/ecosphere-api/internal/infrastructure/config"
	"github.com/ecosphere/ecosphere-api/internal/infrastructure/db/mongo"
	"github.com/ecosphere/ecosphere-api/internal/infrastructure/db/redis"
	"github.com/ecosphere/ecosphere-api/internal/infrastructure/email"
	"github.com/ecosphere/ecosphere-api/internal/infrastructure/storage"
	"github.com/ecosphere/ecosphere-api/internal/jobs"
	"github.com/ecosphere/ecosphere-api/pkg/logger"
)

// @title           EcoSphere API
// @version         1.0
// @description     Consumer sustainability tracking backend.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Infrastructure ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	store, err := storage.NewBucketStore(ctx, storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object storage init failed")
	}

	mailer := email.NewSMTPMailer(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Sender:   cfg.SMTP.Sender,
		Password: cfg.SMTP.Password,
	})

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	actionRepo := mongo.NewActionRepository(db)
	reminderRepo := mongo.NewReminderRepository(db)
	eventRepo := mongo.NewEventRepository(db)

	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		actionRepo.EnsureIndexes,
		reminderRepo.EnsureIndexes,
		eventRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	actionService := service.NewActionService(actionRepo, userRepo, log)
	reminderService := service.NewReminderService(reminderRepo, actionRepo, userRepo, mailer, log)
	eventService := service.NewEventService(eventRepo, userRepo, log)
	impactService := service.NewImpactService(actionRepo, userRepo, reminderRepo, log)
	leaderboardCache := redis.NewLeaderboardCache(rdb, cfg.Redis.LeaderboardTTL)
	leaderboardService := service.NewLeaderboardService(userRepo, actionRepo, leaderboardCache, log)
	receiptService := service.NewReceiptService(store, log)
	recomputeService := service.NewRecomputeService(userRepo, actionRepo, log)

	// --- Background jobs ---
	scheduler := jobs.NewScheduler(reminderService, recomputeService, redis.NewJobLock(rdb), log)
	if err := scheduler.Start(ctx, jobs.Config{
		ReminderSpec:  cfg.Jobs.ReminderSpec,
		RecomputeSpec: cfg.Jobs.RecomputeSpec,
	}); err != nil {
		log.Fatal().Err(err).Msg("job scheduler failed to start")
	}
	defer scheduler.Stop()

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Auth:        authService,
		Actions:     actionService,
		Reminders:   reminderService,
		Events:      eventService,
		Impact:      impactService,
		Leaderboard: leaderboardService,
		Receipts:    receiptService,
		Recompute:   recomputeService,
		Mongo:       db,
		Redis:       rdb,
		JWTSecret:   cfg.JWTSecret,
		Logger:      log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
