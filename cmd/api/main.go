// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/tenanthub/internal/admin"
	"github.com/carterperez-dev/tenanthub/internal/auth"
	"github.com/carterperez-dev/tenanthub/internal/catalog"
	"github.com/carterperez-dev/tenanthub/internal/config"
	"github.com/carterperez-dev/tenanthub/internal/core"
	"github.com/carterperez-dev/tenanthub/internal/datastore"
	"github.com/carterperez-dev/tenanthub/internal/health"
	"github.com/carterperez-dev/tenanthub/internal/hubingest"
	"github.com/carterperez-dev/tenanthub/internal/mail"
	"github.com/carterperez-dev/tenanthub/internal/member"
	"github.com/carterperez-dev/tenanthub/internal/metrics"
	"github.com/carterperez-dev/tenanthub/internal/middleware"
	"github.com/carterperez-dev/tenanthub/internal/notification"
	"github.com/carterperez-dev/tenanthub/internal/organization"
	"github.com/carterperez-dev/tenanthub/internal/project"
	"github.com/carterperez-dev/tenanthub/internal/server"
	"github.com/carterperez-dev/tenanthub/internal/subscription"
	"github.com/carterperez-dev/tenanthub/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	startedAt := time.Now()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis, core.RetryPolicy{
		Attempts: cfg.Database.ConnectRetries,
		Interval: cfg.Database.ConnectRetryInterval,
	})
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	revocations := auth.NewRevocationList(redis.Client)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	jwtManager = jwtManager.WithRevocations(revocations)
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
		"ttl", jwtManager.TokenTTL(),
	)

	registry := metrics.New()

	notificationSvc := notification.NewService(
		notification.NewRepository(db.DB),
		logger,
	)

	userSvc := user.NewService(user.NewRepository(db.DB), notificationSvc)

	authSvc := auth.NewService(auth.ServiceDeps{
		JWT:          jwtManager,
		UserProvider: userSvc,
		OTPs:         auth.NewRedisOTPStore(redis.Client, cfg.OTP.KeyPrefix),
		Mailer:       mail.NewSender(cfg.Mail, logger),
		Notifier:     notificationSvc,
		Revoker:      revocations,
		OTPConfig:    cfg.OTP,
	})

	subscriptionSvc := subscription.NewService(
		subscription.NewRepository(db.DB),
		notificationSvc,
		registry,
		logger,
	)

	projectSvc := project.NewService(project.NewRepository(db.DB), notificationSvc)
	dataStoreSvc := datastore.NewService(datastore.NewRepository(db.DB), projectSvc)
	hubIngestSvc := hubingest.NewService(hubingest.NewRepository(db.DB), projectSvc)
	organizationSvc := organization.NewService(
		organization.NewRepository(db.DB),
		notificationSvc,
	)

	authHandler := auth.NewHandler(authSvc)
	userHandler := user.NewHandler(userSvc)
	subscriptionHandler := subscription.NewHandler(subscriptionSvc)
	projectHandler := project.NewHandler(projectSvc)
	dataStoreHandler := datastore.NewHandler(dataStoreSvc, jwtManager)
	hubIngestHandler := hubingest.NewHandler(hubIngestSvc, jwtManager)
	organizationHandler := organization.NewHandler(organizationSvc)
	notificationHandler := notification.NewHandler(notificationSvc)
	catalogHandler := catalog.NewHandler(
		catalog.NewCatalog(catalog.NewRepository(db.DB)),
	)
	memberHandler := member.NewHandler(member.NewRepository(db.DB))

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DB:         db,
		Redis:      redis,
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		Workflow:   subscriptionSvc,
		StartedAt:  startedAt,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	production := cfg.IsProduction()

	router.Use(middleware.Recoverer(logger, !production))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	if cfg.Metrics.Enabled {
		router.Use(registry.Middleware)
	}
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Prefix: "api:",
			Limit: middleware.FromWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(production))
	router.Use(middleware.CORS(cfg.CORS))

	strict := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Prefix: "auth:",
		Limit: middleware.FromWindow(
			cfg.AuthRateLimit.Requests,
			cfg.AuthRateLimit.Burst,
			cfg.AuthRateLimit.Window,
		),
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: false,
	}).Handler

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, registry.Handler())
	}

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin

	router.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			authHandler.RegisterAccountRoutes(r, strict)
			userHandler.RegisterRoutes(r, authenticator)
		})
		authHandler.RegisterRoutes(r, authenticator, strict)

		subscriptionHandler.RegisterRoutes(r, authenticator)
		subscriptionHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)

		projectHandler.RegisterRoutes(r, authenticator)
		dataStoreHandler.RegisterRoutes(r, authenticator)
		hubIngestHandler.RegisterRoutes(r, authenticator)
		organizationHandler.RegisterRoutes(r, authenticator)
		notificationHandler.RegisterRoutes(r, authenticator)
		catalogHandler.RegisterRoutes(r, authenticator)
		memberHandler.RegisterRoutes(r, authenticator)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
