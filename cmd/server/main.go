package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/tasktango/backend/api/handler"
	"github.com/tasktango/backend/internal/advisor"
	"github.com/tasktango/backend/internal/config"
	"github.com/tasktango/backend/internal/infrastructure/monitor"
	pgInfra "github.com/tasktango/backend/internal/infrastructure/postgres"
	redisInfra "github.com/tasktango/backend/internal/infrastructure/redis"
	"github.com/tasktango/backend/internal/infrastructure/suggestcache"
	"github.com/tasktango/backend/internal/middleware"
	"github.com/tasktango/backend/internal/router"
	"github.com/tasktango/backend/internal/services"
	"github.com/tasktango/backend/internal/services/lifecycle"
	"github.com/tasktango/backend/pkg/httpcontext"
	"github.com/tasktango/backend/pkg/logger"
	"github.com/tasktango/backend/repository/postgres"
	redisRepo "github.com/tasktango/backend/repository/redis"
	adminUC "github.com/tasktango/backend/usecase/admin"
	authUC "github.com/tasktango/backend/usecase/auth"
	taskUC "github.com/tasktango/backend/usecase/task"
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

	cache, err := suggestcache.Open(cfg.Cache.Path)
	if err != nil {
		zapLogger.Fatal("failed to open suggestion cache", zap.Error(err))
	}
	manager.Register("suggest_cache", func(ctx context.Context) error {
		return cache.Close()
	})

	mon := monitor.New(pool, redisClient, cache, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	janitor := services.NewJanitor(cache, zapLogger, services.JanitorConfig{
		Interval:  cfg.Cache.SweepInterval,
		Retention: cfg.Cache.Retention,
	})
	janitor.Start()
	manager.Register("cache_janitor", func(ctx context.Context) error {
		janitor.Stop(ctx)
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	stageRepo := postgres.NewStageHistoryRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Auth.SessionTTL)

	authUseCase := authUC.New(userRepo, sessionRepo, authUC.Config{
		TokenSecret: cfg.Auth.TokenSecret,
		TokenIssuer: cfg.Auth.TokenIssuer,
		TokenTTL:    cfg.Auth.TokenTTL,
		SessionTTL:  cfg.Auth.SessionTTL,
		AdminEmail:  cfg.Auth.AdminEmail,
	}, zapLogger)
	taskUseCase := taskUC.New(taskRepo, stageRepo, zapLogger)
	adminUseCase := adminUC.New(taskRepo, zapLogger)

	advisorClient := advisor.NewClient(
		cfg.Advisor.APIKey,
		cfg.Advisor.BaseURL,
		cfg.Advisor.Model,
		cfg.Advisor.Timeout,
	)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	cookie := apiHandler.CookieConfig{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.CookieSecure,
	}

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, cookie, ctxAdapter, zapLogger),
		Task:    apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Admin:   apiHandler.NewAdminHandler(adminUseCase, ctxAdapter, zapLogger),
		Advisor: apiHandler.NewAdvisorHandler(advisorClient, cache, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
		Pages:   apiHandler.NewPageHandler(),
	}

	sessionAuth := middleware.SessionAuth(cfg.Auth.CookieName, authUseCase, cfg.Context.RequestTimeout, zapLogger)
	pageGuard := middleware.NewPageGuard(cfg.Auth.CookieName, authUseCase, cfg.Context.RequestTimeout)
	r := router.New(handlers, sessionAuth, pageGuard)

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
