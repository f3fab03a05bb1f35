package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/catalogsync/backend/docs"
	catalogapp "github.com/catalogsync/backend/internal/application/catalog"
	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/cache"
	"github.com/catalogsync/backend/internal/infrastructure/config"
	"github.com/catalogsync/backend/internal/infrastructure/ecommerce"
	"github.com/catalogsync/backend/internal/infrastructure/logger"
	"github.com/catalogsync/backend/internal/infrastructure/persistence"
	"github.com/catalogsync/backend/internal/infrastructure/scheduler"
	"github.com/catalogsync/backend/internal/infrastructure/telemetry"
	"github.com/catalogsync/backend/internal/interfaces/http/handler"
	"github.com/catalogsync/backend/internal/interfaces/http/middleware"
	"github.com/catalogsync/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//	@title			Catalog Sync API
//	@version		1.0
//	@description	Ingests VTEX and Shopify catalogs into a single product table and serves search over it.

//	@host		localhost:3000
//	@BasePath	/api/v1

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

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
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("Starting catalog sync service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing is installed before the database so otelgorm picks up the global provider
	tp, err := telemetry.NewTracerProvider(rootCtx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.PyroscopeEndpoint,
		ApplicationName: cfg.Telemetry.ServiceName,
		ServiceVersion:  version,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() {
		tp.EnableSpanProfiles()
	}

	mp, err := telemetry.NewMeterProvider(rootCtx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mp.Shutdown(ctx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	lp, err := telemetry.NewLoggerProvider(rootCtx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize OTLP logs", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = lp.Shutdown(ctx)
	}()
	logLevel, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		logLevel = zapcore.InfoLevel
	}
	log = lp.Bridge(log, logLevel)

	ingestionMetrics, err := telemetry.NewIngestionMetrics(mp.Meter())
	if err != nil {
		log.Fatal("Failed to create ingestion metrics", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(rootCtx); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
		log.Info("Database schema migrated")
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.DefaultDBTracingConfig()
		dbTracing.Enabled = true
		dbTracing.LogFullSQL = cfg.App.Env != "production"
		dbTracing.SlowQueryThresh = cfg.Database.SlowThreshold
		if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	registry, err := ecommerce.NewRegistry(shopifyClientConfig(cfg.Shopify), vtexClientConfig(cfg.VTEX), log)
	if err != nil {
		log.Fatal("Failed to initialize platform clients", zap.Error(err))
	}

	lock, closeLock := ingestionLock(cfg.Redis, log)
	defer closeLock()

	productRepo := persistence.NewGormProductRepository(db.DB)
	reconciler := catalogapp.NewReconciliationService(productRepo, log)
	ingestionService := catalogapp.NewIngestionService(registry, reconciler, lock, log,
		catalogapp.WithRecorder(ingestionMetrics),
	)
	queryService := catalogapp.NewProductQueryService(productRepo)

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
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Tracing - Server span, enriched with request attributes
	// 4. Logger - Log requests with trace fields
	// 5. Security headers and CORS
	// 6. RateLimit - Per client IP (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
		limiter.StartCleanup(rootCtx, time.Minute)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Float64("rps", cfg.HTTP.RateLimitRPS),
			zap.Int("burst", cfg.HTTP.RateLimitBurst),
		)
	}

	router.RegisterAPI(engine, router.Handlers{
		Product: handler.NewProductHandler(ingestionService, queryService),
		System:  handler.NewSystemHandler(cfg.App.Name, version, db, ingestionService.Platforms),
	}, router.WithAPIVersion("v1"))
	if cfg.HTTP.SwaggerEnabled {
		router.RegisterSwagger(engine)
	}

	sched := startScheduler(rootCtx, cfg.Scheduler, ingestionService, registry, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		log.Info("Shutting down server...")
	case err := <-serverErr:
		log.Error("Server failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(ctx); err != nil {
			log.Warn("Scheduler did not stop cleanly", zap.Error(err))
		}
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// shopifyClientConfig maps the Shopify section, or returns nil when disabled
func shopifyClientConfig(c config.ShopifyConfig) *ecommerce.ShopifyConfig {
	if !c.Enabled {
		return nil
	}
	out := ecommerce.NewShopifyConfig(c.Shop, c.AccessToken)
	out.APIVersion = c.APIVersion
	out.APIBaseURL = c.BaseURL
	out.TimeoutSeconds = c.TimeoutSeconds
	out.RequestsPerSecond = c.RequestsPerSecond
	return out
}

// vtexClientConfig maps the VTEX section, or returns nil when disabled
func vtexClientConfig(c config.VTEXConfig) *ecommerce.VTEXConfig {
	if !c.Enabled {
		return nil
	}
	out := ecommerce.NewVTEXConfig(c.AccountName, c.AppKey, c.AppToken)
	out.APIBaseURL = c.BaseURL
	out.TimeoutSeconds = c.TimeoutSeconds
	out.RequestsPerSecond = c.RequestsPerSecond
	return out
}

// ingestionLock returns a Redis lock when Redis is enabled and reachable,
// otherwise a process-local one.
func ingestionLock(c config.RedisConfig, log *zap.Logger) (integration.IngestionLock, func()) {
	if !c.Enabled {
		log.Info("Using in-process ingestion lock")
		return cache.NewInMemoryIngestionLock(), func() {}
	}

	lock, err := cache.NewRedisIngestionLock(cache.RedisConfig{
		Addr:     c.Addr(),
		Password: c.Password,
		DB:       c.DB,
	}, c.LockTTL, log)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-process ingestion lock",
			zap.String("addr", c.Addr()), zap.Error(err))
		return cache.NewInMemoryIngestionLock(), func() {}
	}

	log.Info("Using Redis ingestion lock", zap.String("addr", c.Addr()))
	return lock, func() {
		if err := lock.Close(); err != nil {
			log.Warn("Error closing Redis client", zap.Error(err))
		}
	}
}

// startScheduler starts periodic ingestion when enabled. With no platforms
// configured it schedules every registered platform.
func startScheduler(
	ctx context.Context,
	c config.SchedulerConfig,
	ingester scheduler.Ingester,
	registry *integration.Registry,
	log *zap.Logger,
) *scheduler.IngestionScheduler {
	if !c.Enabled {
		return nil
	}

	platforms := registry.Platforms()
	if len(c.Platforms) > 0 {
		parsed, err := scheduler.ParsePlatforms(c.Platforms)
		if err != nil {
			log.Fatal("Invalid scheduler platforms", zap.Error(err))
		}
		platforms = parsed
	}

	sched, err := scheduler.NewIngestionScheduler(scheduler.IngestionSchedulerConfig{
		Spec:       c.Spec,
		Platforms:  platforms,
		JobTimeout: c.JobTimeout,
	}, ingester, log)
	if err != nil {
		if errors.Is(err, scheduler.ErrNoPlatforms) {
			log.Warn("Scheduler enabled but no platform is configured")
			return nil
		}
		log.Fatal("Failed to create ingestion scheduler", zap.Error(err))
	}
	if err := sched.Start(ctx); err != nil {
		log.Fatal("Failed to start ingestion scheduler", zap.Error(err))
	}
	return sched
}
