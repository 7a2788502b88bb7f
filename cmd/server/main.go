package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/cache"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/shop/backend/internal/infrastructure/event"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/infrastructure/migration"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/internal/infrastructure/scheduler"
	"github.com/shop/backend/internal/infrastructure/storage"
	"github.com/shop/backend/internal/infrastructure/telemetry"
	"github.com/shop/backend/internal/interfaces/http/handler"
	"github.com/shop/backend/internal/interfaces/http/middleware"
	"github.com/shop/backend/internal/interfaces/http/router"
	"github.com/shop/backend/migrations"
	"go.uber.org/zap"

	_ "github.com/shop/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Shop Backend API
//	@version		1.0
//	@description	Online shop API: catalog, cart and checkout, wallet, user messages, blog and site content.

//	@contact.name	API Support
//	@contact.url	https://github.com/shop/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// Telemetry. Every provider is a no-op when disabled.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdown(log, "tracer provider", tracerProvider.Shutdown)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer shutdown(log, "meter provider", meterProvider.Shutdown)

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogExportEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	defer shutdown(log, "logger provider", loggerProvider.Shutdown)
	log = loggerProvider.Bridge(log, logger.ParseLevel(cfg.Log.Level))

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiler.Enabled,
		ServerAddress:   cfg.Profiler.ServerAddress,
		ApplicationName: cfg.Profiler.ApplicationName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if cfg.Profiler.SpanProfiles && profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	shopMetrics, err := telemetry.NewShopMetrics(meterProvider.Meter("shop-backend"))
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}

	log.Info("Starting shop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	db, err := persistence.NewDatabase(&cfg.Database, persistence.Options{
		Logger:         log,
		LogLevel:       logger.MapGormLogLevel(cfg.Log.Level),
		SlowThreshold:  cfg.Telemetry.DBSlowQueryThresh,
		LogQueryParams: cfg.Telemetry.DBLogFullSQL,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	if cfg.Database.MigrateOnStart {
		if err := migrateSchema(cfg.Database.DSN(), log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	idempotencyStore, err := cache.NewIdempotencyStore(ctx, cfg.Redis, cache.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	blacklist := auth.NewTokenBlacklist(ctx, cfg.Redis, log)

	objectStorage, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	serializer := event.NewShopEventSerializer()
	svc := newServices(dependencies{
		db:          db.DB,
		cfg:         cfg,
		jwt:         jwtService,
		blacklist:   blacklist,
		idempotency: idempotencyStore,
		storage:     objectStorage,
		serializer:  serializer,
		metrics:     shopMetrics,
		logger:      log,
	})

	if err := svc.bootstrapStaff(ctx, cfg.App, log); err != nil {
		log.Fatal("Failed to bootstrap staff account", zap.Error(err))
	}

	// Events are written to the outbox inside business transactions and
	// relayed to the in-process bus by the outbox processor.
	eventBus := event.NewInMemoryEventBus(log)
	svc.subscribe(eventBus, idempotencyStore, cfg.Outbox, log)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer shutdown(log, "event bus", eventBus.Stop)

	outboxProcessor := event.NewOutboxProcessor(svc.outboxRepo, eventBus, serializer, event.RelayConfig{
		BatchSize:    cfg.Outbox.BatchSize,
		PollInterval: cfg.Outbox.PollInterval,
	}, log)
	if err := outboxProcessor.Start(ctx); err != nil {
		log.Fatal("Failed to start outbox processor", zap.Error(err))
	}
	defer shutdown(log, "outbox processor", outboxProcessor.Stop)

	if cfg.Scheduler.Enabled {
		jobScheduler := scheduler.NewScheduler(scheduler.SchedulerConfig{
			Enabled:    true,
			JobTimeout: cfg.Scheduler.JobTimeout,
			RunOnStart: true,
		}, log)
		if err := svc.registerJobs(jobScheduler, cfg.Scheduler, cfg.Outbox.Retention, log); err != nil {
			log.Fatal("Failed to register scheduled jobs", zap.Error(err))
		}
		if err := jobScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer shutdown(log, "scheduler", jobScheduler.Stop)
		log.Info("Scheduler started",
			zap.Duration("offer_expiry_interval", cfg.Scheduler.OfferExpiryInterval),
			zap.Duration("cart_purge_interval", cfg.Scheduler.CartPurgeInterval),
			zap.Duration("event_purge_interval", cfg.Scheduler.EventPurgeInterval),
		)
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. RequestID  2. Recovery  3. Tracing  4. Logger  5. Metrics/Profiling
	// 6. Security headers  7. CORS  8. BodyLimit  9. RateLimit
	tracingConfig := middleware.DefaultTracingConfig()
	tracingConfig.ServiceName = cfg.Telemetry.ServiceName
	tracingConfig.Enabled = tracerProvider.IsEnabled()

	profilingConfig := middleware.DefaultProfilingConfig()
	profilingConfig.Enabled = profiler.IsEnabled()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(tracingConfig))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(meterProvider))
	engine.Use(middleware.Profiling(profilingConfig))
	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = cfg.HTTP.HSTSEnabled
	engine.Use(middleware.SecureWithConfig(security))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.SessionHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Close()
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	access := router.Access{
		Required: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		}),
		Optional: middleware.OptionalJWTAuthMiddleware(jwtService, blacklist),
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Close()
		access.CredentialLimit = middleware.AuthRateLimit(authLimiter)
	}

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, db)
	engine.GET("/health", systemHandler.Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, access.Required),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterShopRoutes(r, svc.handlers(systemHandler), access)
	r.Setup()
	log.Info("API routes registered",
		zap.String("base_path", r.BasePath()),
		zap.Int("routes", len(r.Routes())),
	)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// shutdown stops a component on exit and logs a failure
func shutdown(log *zap.Logger, name string, stop func(context.Context) error) {
	if err := stop(context.Background()); err != nil {
		log.Error("Error stopping "+name, zap.Error(err))
	}
}

// migrateSchema applies the embedded migrations over a separate connection
func migrateSchema(dsn string, log *zap.Logger) error {
	m, err := migration.NewFromURL(dsn, migration.FromFS(migrations.Files), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return m.Up()
}
