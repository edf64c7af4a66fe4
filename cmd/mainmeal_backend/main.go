package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/core/services"
	"github.com/mainmeal/mainmeal_backend/internal/handlers"
	"github.com/mainmeal/mainmeal_backend/internal/middleware"
	"github.com/mainmeal/mainmeal_backend/internal/platform/config"
	"github.com/mainmeal/mainmeal_backend/internal/repositories/database/pgsql"
	"github.com/mainmeal/mainmeal_backend/internal/utils"
	"github.com/mainmeal/mainmeal_backend/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// tokenCleanupInterval is how often expired refresh tokens, blacklist rows,
// stale usage counters and old barcode cache entries are swept.
const tokenCleanupInterval = time.Hour

// usageRetention keeps daily counters around long enough for debugging while
// bounding table growth.
const usageRetention = 30 * 24 * time.Hour

// barcodeCacheRetention matches the cache TTL with a little slack.
const barcodeCacheRetention = 14 * 24 * time.Hour

// @title MainMeal API
// @version 1.0
// @description Family meal planning backend: recipe analysis, pantry, shopping lists and weekly plans.

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

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	startJanitor(serviceContainer, repos, logger)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations before the server starts
// taking traffic. A temporary database/sql connection is used because the
// migrate driver does not speak pgxpool.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// startJanitor sweeps expired auth tokens, stale usage counters and old
// barcode cache rows on a fixed interval for the life of the process.
func startJanitor(sc *portssvc.ServiceContainer, repos portsrepo.RepositoryProvider, logger *slog.Logger) {
	go func() {
		ticker := time.NewTicker(tokenCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			now := time.Now().UTC()

			if err := sc.Token.CleanupExpired(ctx, now); err != nil {
				logger.Error("Token cleanup failed", slog.String("error", err.Error()))
			}
			if removed, err := repos.UsageRepo.DeleteUsageBefore(ctx, now.Add(-usageRetention)); err != nil {
				logger.Error("Usage cleanup failed", slog.String("error", err.Error()))
			} else if removed > 0 {
				logger.Info("Removed stale usage counters", slog.Int64("count", removed))
			}
			if removed, err := repos.BarcodeRepo.DeleteCachedBefore(ctx, now.Add(-barcodeCacheRetention)); err != nil {
				logger.Error("Barcode cache cleanup failed", slog.String("error", err.Error()))
			} else if removed > 0 {
				logger.Info("Removed stale barcode cache rows", slog.Int64("count", removed))
			}

			cancel()
		}
	}()
}
