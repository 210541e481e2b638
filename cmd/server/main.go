package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/habitly/backend/api/handler"
	"github.com/habitly/backend/internal/config"
	"github.com/habitly/backend/internal/identity"
	"github.com/habitly/backend/internal/infrastructure/buffer"
	"github.com/habitly/backend/internal/infrastructure/monitor"
	pgInfra "github.com/habitly/backend/internal/infrastructure/postgres"
	redisInfra "github.com/habitly/backend/internal/infrastructure/redis"
	"github.com/habitly/backend/internal/middleware"
	"github.com/habitly/backend/internal/router"
	"github.com/habitly/backend/internal/services"
	"github.com/habitly/backend/internal/services/lifecycle"
	"github.com/habitly/backend/pkg/httpcontext"
	"github.com/habitly/backend/pkg/logger"
	"github.com/habitly/backend/repository/postgres"
	redisRepo "github.com/habitly/backend/repository/redis"
	analyticsUC "github.com/habitly/backend/usecase/analytics"
	habitUC "github.com/habitly/backend/usecase/habit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "habit_ops")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	habitRepo := postgres.NewHabitRepository(pool)
	identityCache := redisRepo.NewIdentityCache(redisClient, cfg.Identity.CacheTTL)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		habitRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  cfg.Buffer.BatchSize,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	var verifier identity.Verifier
	switch cfg.Identity.Mode {
	case "local":
		zapLogger.Warn("using local token verification; not for production")
		verifier = identity.NewLocalVerifier(cfg.Identity.JWTSecret)
	default:
		verifier = identity.NewRemoteVerifier(cfg.Identity.VerifyURL, cfg.Identity.Timeout)
	}
	verifier = identity.NewCachingVerifier(verifier, identityCache, zapLogger)

	habitUseCase := habitUC.New(habitRepo, bufferBridge, zapLogger)
	analyticsUseCase := analyticsUC.New(habitRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Habit:     apiHandler.NewHabitHandler(habitUseCase, ctxAdapter, zapLogger),
		Analytics: apiHandler.NewAnalyticsHandler(analyticsUseCase, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.Auth(verifier, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
