package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/peraplan/peraplan_backend/internal/core/services"
	"github.com/peraplan/peraplan_backend/internal/handlers"
	"github.com/peraplan/peraplan_backend/internal/middleware"
	"github.com/peraplan/peraplan_backend/internal/platform/config"
	"github.com/peraplan/peraplan_backend/internal/repositories/database/pgsql"
	"github.com/peraplan/peraplan_backend/pkg/database"
)

// @title PeraPlan Backend API
// @version 1.0
// @description Personal finance tracker with recurring-entry projection and budget aggregation.

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
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories and services, then register all routes.
	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos)
	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Block until an interrupt, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server exited.")
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
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

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// corsConfig builds the CORS policy for the frontend origin.
func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	corsCfg.ExposeHeaders = []string{"X-Request-ID"}
	corsCfg.AllowCredentials = true
	corsCfg.MaxAge = 12 * time.Hour
	return corsCfg
}
