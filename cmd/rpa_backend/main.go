package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	"github.com/palamattam/rubber_plant_app/internal/core/services"
	"github.com/palamattam/rubber_plant_app/internal/handlers"
	"github.com/palamattam/rubber_plant_app/internal/middleware"
	"github.com/palamattam/rubber_plant_app/internal/platform/config"
	"github.com/palamattam/rubber_plant_app/internal/repositories/database/pgsql"
	"github.com/palamattam/rubber_plant_app/internal/scheduler"
	"github.com/palamattam/rubber_plant_app/internal/scraper"
	"github.com/palamattam/rubber_plant_app/internal/utils"
	"github.com/palamattam/rubber_plant_app/internal/websocket"
	"github.com/palamattam/rubber_plant_app/pkg/cache"
	"github.com/palamattam/rubber_plant_app/pkg/database"
)

// @title RPA Backend API
// @version 1.0
// @description Management backend for the rubber plant: rates, barrels, workers and stock.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	runMigrations(cfg, logger)

	// Redis is optional; without it the rate service skips last-known caching.
	var rateCache *cache.RateCache
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without rate cache", slog.String("error", err.Error()))
		} else {
			defer func() { _ = redisClient.Close() }()
			rateCache = cache.NewRateCache(redisClient)
			logger.Info("Redis rate cache established.")
		}
	}

	// Scraper is optional too; without source URLs every cycle falls back.
	var fetcher services.RateFetcher
	if len(cfg.RateSourceURLs) > 0 {
		fetcher = scraper.NewRubberBoardScraper(
			cfg.RateSourceURLs,
			decimal.NewFromFloat(cfg.RateSaneMin),
			decimal.NewFromFloat(cfg.RateSaneMax),
			logger,
		)
	} else {
		logger.Warn("No rate source URLs configured, live fetches will fail over to fallback.")
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	hub := websocket.NewHub(logger)
	go hub.Run()

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, fetcher, rateCache, hub)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rateScheduler *scheduler.RateScheduler
	if cfg.SchedulerEnabled {
		rateScheduler = scheduler.NewRateScheduler(serviceContainer.Rate, scheduler.Config{
			TimeZone:             cfg.SchedulerTimeZone,
			DailyFetchHour:       cfg.DailyFetchHour,
			BusinessHoursStart:   cfg.BusinessHoursStart,
			BusinessHoursEnd:     cfg.BusinessHoursEnd,
			HistoryRetentionDays: cfg.HistoryRetentionDays,
		}, logger)
		rateScheduler.Start(ctx)
		defer rateScheduler.Stop()
	} else {
		logger.Info("Rate scheduler disabled by configuration.")
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	registerCustomValidators(logger)

	r := gin.New()

	// Global middleware (logging, recovery, CORS, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, hub, rateScheduler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, draining connections...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped.")
}

// runMigrations applies all pending "up" migrations before the server accepts
// traffic. A migration failure is fatal.
func runMigrations(cfg *config.Config, logger *slog.Logger) {
	logger.Info("Running database migrations...")
	// Open a temporary standard sql.DB connection for migrations.
	// Using pgx/v5/stdlib driver to be compatible with the main pool.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		os.Exit(1)
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		os.Exit(1)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
}

// registerCustomValidators wires the binding tags that go beyond the built-ins.
func registerCustomValidators(logger *slog.Logger) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		logger.Warn("Could not access gin validator engine, custom validators not registered.")
		return
	}
	_ = v.RegisterValidation("product", func(fl validator.FieldLevel) bool {
		return domain.IsKnownProduct(fl.Field().String())
	})
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return corsCfg
}
