package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tripplanner/internal/app"
	"tripplanner/internal/catalog"
	"tripplanner/internal/chat"
	"tripplanner/internal/config"
	"tripplanner/internal/handler"
	"tripplanner/internal/itinerary"
	"tripplanner/internal/logger"
	"tripplanner/internal/middleware"
	"tripplanner/internal/realtime"
	internalRedis "tripplanner/internal/redis"
	"tripplanner/internal/repository/postgres"
	"tripplanner/internal/service"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, zap.String("service", cfg.NewRelic.AppName))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Warn("Failed to initialize New Relic", zap.Error(err))
		} else {
			log.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	log.Info("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("Connected to Redis")

	// Wire dependencies.
	server, hub, err := wireServer(ctx, db, redisClient, nrApp, cfg, log)
	if err != nil {
		log.Fatal("Failed to wire server", zap.Error(err))
	}

	// Start server in goroutine.
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	// Websockets are hijacked and not tracked by Shutdown.
	hub.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	log.Info("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	ctx context.Context,
	db *sql.DB,
	redisClient *redis.Client,
	nrApp *newrelic.Application,
	cfg *config.Config,
	log *zap.Logger,
) (*http.Server, *realtime.Hub, error) {
	dayStart, err := itinerary.ParseClock(cfg.Planner.DayStart)
	if err != nil {
		return nil, nil, err
	}
	scheduler := itinerary.Scheduler{DayStart: dayStart, TravelBuffer: cfg.Planner.TravelBufferMins}

	// Initialize Redis stores.
	sessionStore := internalRedis.NewSessionStore(redisClient, cfg.Session.TTL)
	lockStore := internalRedis.NewLockStore(redisClient)

	// Attraction catalog.
	memoryCatalog, err := catalog.NewMemoryCatalog(log.Named("catalog"), catalog.SanFrancisco())
	if err != nil {
		return nil, nil, err
	}
	if cfg.Catalog.GeoIndex {
		if err := memoryCatalog.WithGeoIndex(ctx, internalRedis.NewGeoIndex(redisClient)); err != nil {
			return nil, nil, err
		}
	}
	cat := catalog.NewCachedCatalog(memoryCatalog, cfg.Catalog.CacheTTL, log.Named("catalog"))

	// Initialize repositories.
	tripPlanRepo := postgres.NewTripPlanRepository(db)

	// Metrics.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(registry)

	// Initialize services.
	hub := realtime.NewHub(log.Named("realtime"))
	notificationService := service.NewNotificationService(hub, metrics, log.Named("notification"))
	sessionService := service.NewSessionService(tripPlanRepo, sessionStore, log.Named("session")).
		WithLock(lockStore, cfg.Session.LockTTL)
	assembler := itinerary.NewAssembler(scheduler,
		itinerary.WithAttractionsPerDay(cfg.Planner.AttractionsPerDay),
		itinerary.WithLeadTimeDays(cfg.Planner.LeadTimeDays),
	)
	plannerService := service.NewPlannerService(
		chat.NewKeywordExtractor(memoryCatalog, log.Named("chat")),
		cat, assembler, sessionService, notificationService, metrics, log.Named("planner"),
	)
	optimizerService := service.NewOptimizerService(
		itinerary.NewOptimizer(scheduler, cat, log.Named("optimizer")).WithMaxCandidates(cfg.Planner.MaxDiscoverResults),
		sessionService, notificationService, metrics, log.Named("optimizer"),
	)

	// Initialize handlers.
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		ChatHandler:       handler.NewChatHandler(plannerService),
		OptimizeHandler:   handler.NewOptimizeHandler(optimizerService),
		SessionHandler:    handler.NewSessionHandler(sessionService),
		AttractionHandler: handler.NewAttractionHandler(cat),
		WSHandler:         handler.NewWSHandler(sessionService, hub, notificationService, cfg.CORS.AllowedOrigins, log.Named("ws")),
		IdempotencyStore:  middleware.NewRedisResponseStore(redisClient),
		RateLimiter:       rateLimiter,
		MetricsHandler:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		NewRelicApp:       nrApp,
		Logger:            log.Named("http"),
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, hub, nil
}
