// Package main provides the entrypoint for the AquaGrid API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aquagrid/aquagrid/internal/api"
	"github.com/aquagrid/aquagrid/internal/api/middleware"
	"github.com/aquagrid/aquagrid/internal/auth"
	"github.com/aquagrid/aquagrid/internal/config"
	"github.com/aquagrid/aquagrid/internal/database"
	"github.com/aquagrid/aquagrid/internal/notification"
	"github.com/aquagrid/aquagrid/internal/pump"
	"github.com/aquagrid/aquagrid/internal/schedule"
	"github.com/aquagrid/aquagrid/internal/telemetry"
	"github.com/aquagrid/aquagrid/internal/user"
	"github.com/aquagrid/aquagrid/internal/waterusage"
	"github.com/aquagrid/aquagrid/internal/zone"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "aquagrid-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting AquaGrid API")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig, err := database.ConfigFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid database configuration")
	}
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Initialize domain services
	userService := user.NewService(user.NewPostgresRepository(pool))
	pumpService := pump.NewService(pump.NewPostgresRepository(pool))
	zoneService := zone.NewService(zone.NewPostgresRepository(pool))
	scheduleService := schedule.NewService(schedule.NewPostgresRepository(pool))
	notificationService := notification.NewService(notification.NewPostgresRepository(pool))
	usageService := waterusage.NewService(waterusage.NewPostgresRepository(pool))
	log.Info().Msg("domain services initialized")

	// Initialize auth service
	authService := auth.NewService(auth.ServiceConfig{
		Credentials: userService,
		Sessions:    auth.NewPostgresRepository(pool),
		Issuer:      auth.NewTokenIssuer(cfg.JWTSigningKey),
	})
	log.Info().Msg("auth service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:             Version,
		BuildTime:           BuildTime,
		Logger:              log,
		ServiceName:         serviceName,
		Metrics:             metrics,
		Database:            pool,
		AuthService:         authService,
		UserService:         userService,
		PumpService:         pumpService,
		ZoneService:         zoneService,
		ScheduleService:     scheduleService,
		NotificationService: notificationService,
		WaterUsageService:   usageService,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
