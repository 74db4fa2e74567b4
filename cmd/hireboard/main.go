package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hireboard/hireboard/internal/app"
	"github.com/hireboard/hireboard/internal/applications"
	"github.com/hireboard/hireboard/internal/auth"
	"github.com/hireboard/hireboard/internal/companies"
	"github.com/hireboard/hireboard/internal/jobs"
	"github.com/hireboard/hireboard/internal/observability"
	"github.com/hireboard/hireboard/internal/platform/db"
	"github.com/hireboard/hireboard/internal/platform/kv"
	"github.com/hireboard/hireboard/internal/rbac"
	"github.com/hireboard/hireboard/internal/saved"
	"github.com/hireboard/hireboard/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	if cfg.DBAutoMigrate {
		if err := db.Migrate(ctx, dbpool); err != nil {
			logger.Error("migrate", slog.Any("error", err))
			os.Exit(1)
		}
	}

	redisClient, err := kv.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	var denylist auth.Denylist
	if redisClient != nil {
		denylist = auth.NewRedisDenylist(redisClient)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	} else {
		logger.Warn("REDIS_ADDR not set, logout will not revoke tokens")
	}

	metrics := observability.NewMetrics()

	tokens := auth.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	gate := auth.NewGate(auth.GateConfig{
		Logger:     logger,
		Tokens:     tokens,
		Denylist:   denylist,
		CookieName: cfg.TokenCookieName,
		Observer:   metrics,
	})
	rbacMiddleware := rbac.Middleware{Logger: logger}
	hasher := auth.BcryptHasher{}

	savedManager := saved.NewManager(saved.NewRepository(dbpool), metrics)

	usersService := users.NewService(users.NewRepository(dbpool), hasher, savedManager, logger)
	usersHandler := users.NewHandler(logger, usersService, savedManager, gate.Middleware)

	authService := auth.NewService(auth.NewRepository(dbpool), hasher, tokens, denylist, logger)
	authHandler := auth.NewHandler(auth.HandlerConfig{
		Logger:     logger,
		Service:    authService,
		Profiles:   usersService,
		Cookies:    auth.CookieWriter{Name: cfg.TokenCookieName, Secure: cfg.IsProduction()},
		LoginLimit: cfg.LoginRateLimitPerMinute,
	})

	companiesService := companies.NewService(companies.NewRepository(dbpool))
	companiesHandler := companies.NewHandler(logger, companiesService, gate.Middleware, rbacMiddleware)

	jobsService := jobs.NewService(jobs.NewRepository(dbpool), logger)
	jobsHandler := jobs.NewHandler(logger, jobsService, savedManager, gate.Middleware, rbacMiddleware)

	applicationsService := applications.NewService(applications.NewRepository(dbpool), jobsService, logger)
	applicationsHandler := applications.NewHandler(logger, applicationsService, gate.Middleware, rbacMiddleware)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		AuthHandler:         authHandler,
		UsersHandler:        usersHandler,
		JobsHandler:         jobsHandler,
		CompaniesHandler:    companiesHandler,
		ApplicationsHandler: applicationsHandler,
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
