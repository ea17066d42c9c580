// Package main is the entry point for the crew schedule scraper service.
//
//	@title			Crew Schedule Scraper API
//	@version		1.0.0
//	@description	Logs in to a tenant's crew scheduling portal and returns a three-month flight schedule.
//
//	@contact.name	API Support
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/crewlink/crew-schedule-scraper/docs"

	// Application layers
	"github.com/crewlink/crew-schedule-scraper/internal/adapter/crewportal"
	schedulehttp "github.com/crewlink/crew-schedule-scraper/internal/adapter/http"
	"github.com/crewlink/crew-schedule-scraper/internal/adapter/http/middleware"
	"github.com/crewlink/crew-schedule-scraper/internal/config"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/logger"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/telemetry"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/timeutil"
	"github.com/crewlink/crew-schedule-scraper/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	appLogger := setupLogger(cfg)

	appLogger.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("portal", cfg.Portal.BaseURL).
		Str("timezone", cfg.Portal.Timezone).
		Msg("Configuration loaded")

	tel, err := telemetry.Setup(context.Background(), telemetry.Config{
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to set up telemetry")
	}

	tenants, err := config.LoadTenants(cfg.Portal.TenantsFile, cfg.Portal.Defaults)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to load tenant profiles")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Setup middleware
	opts := middleware.DefaultOptions()
	opts.AllowedOrigins = cfg.CORS.AllowedOrigins
	opts.Recovery.DisablePrintStack = cfg.IsProduction()
	middleware.Setup(e, appLogger.Zerolog(), opts)

	// Setup routes
	setupRoutes(e, cfg, tenants, appLogger)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		appLogger.Info().
			Str("address", addr).
			Bool("tracing", tel.Enabled()).
			Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, tel, appLogger)
}

// setupLogger builds the application logger and makes it the global one.
func setupLogger(cfg *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	logger.SetGlobal(appLogger)
	log.Logger = appLogger.Zerolog()
	return appLogger
}

// setupRoutes wires the portal adapter, the scrape use case and the HTTP handler.
func setupRoutes(e *echo.Echo, cfg *config.Config, tenants *config.Tenants, appLogger *logger.Logger) {
	factory := crewportal.NewFactory(crewportal.Options{
		BaseURL:   cfg.Portal.BaseURL,
		Timeout:   cfg.Portal.RequestTimeout,
		UserAgent: cfg.Portal.UserAgent,
		Tenants:   tenants,
		Logger:    appLogger,
	})

	scrapeUseCase := usecase.NewScrapeUseCase(factory, &usecase.Config{
		Clock:     timeutil.NewZonedClock(timeutil.NewRealClock(), cfg.Portal.Location()),
		Normalize: crewportal.Normalize,
		Logger:    appLogger,
	})

	handler := schedulehttp.NewScheduleHandler(scrapeUseCase)
	schedulehttp.RegisterRoutes(e, handler)

	// Swagger documentation endpoint
	if !cfg.IsProduction() {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}
}

// gracefulShutdown waits for an interrupt, drains in-flight scrapes and flushes spans.
func gracefulShutdown(e *echo.Echo, tel *telemetry.Telemetry, appLogger *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	appLogger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		appLogger.Error().Err(err).Msg("Error during server shutdown")
	}
	if err := tel.Shutdown(ctx); err != nil {
		appLogger.Error().Err(err).Msg("Error flushing traces")
	}

	appLogger.Info().Msg("Server stopped")
}
