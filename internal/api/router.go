// Package api provides the HTTP API for AquaGrid.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/aquagrid/aquagrid/internal/api/handler"
	"github.com/aquagrid/aquagrid/internal/api/middleware"
	"github.com/aquagrid/aquagrid/internal/auth"
	"github.com/aquagrid/aquagrid/internal/notification"
	"github.com/aquagrid/aquagrid/internal/pump"
	"github.com/aquagrid/aquagrid/internal/schedule"
	"github.com/aquagrid/aquagrid/internal/user"
	"github.com/aquagrid/aquagrid/internal/waterusage"
	"github.com/aquagrid/aquagrid/internal/zone"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version             string
	BuildTime           string
	Logger              zerolog.Logger
	ServiceName         string
	Metrics             *middleware.Metrics
	Database            handler.Pinger
	AuthService         *auth.Service
	UserService         *user.Service
	PumpService         *pump.Service
	ZoneService         *zone.Service
	ScheduleService     *schedule.Service
	NotificationService *notification.Service
	WaterUsageService   *waterusage.Service
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "aquagrid-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Database)
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	userHandler := handler.NewUserHandler(cfg.UserService)
	pumpHandler := handler.NewPumpHandler(cfg.PumpService)
	zoneHandler := handler.NewZoneHandler(cfg.ZoneService)
	scheduleHandler := handler.NewScheduleHandler(cfg.ScheduleService)
	notificationHandler := handler.NewNotificationHandler(cfg.NotificationService)
	usageHandler := handler.NewWaterUsageHandler(cfg.WaterUsageService)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.AuthService)

	// Create rate limit middleware for different endpoint categories
	authRateLimit := middleware.RateLimitByIP(middleware.AuthRateLimit) // 10 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Auth endpoints (public) - strict rate limiting
		r.Route("/auth", func(r chi.Router) {
			r.Use(authRateLimit) // 10 requests per minute per IP
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
			// logout-all requires authentication
			r.With(authMiddleware).Post("/logout-all", authHandler.LogoutAll)
		})

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Registration (public) - strict rate limiting
		r.With(authRateLimit).Post("/users/register", userHandler.Register)

		// Everything below requires authentication with per-user rate
		// limiting.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.ListUsers)
				r.Route("/{userId}", func(r chi.Router) {
					r.Get("/", userHandler.GetUser)
					r.Put("/", userHandler.UpdateUser)
					r.Delete("/", userHandler.DeleteUser)

					r.Get("/contact", userHandler.GetContact)
					r.Put("/contact", userHandler.UpdateContact)
					r.Get("/address", userHandler.GetAddress)
					r.Put("/address", userHandler.UpdateAddress)
					r.Put("/password", userHandler.ChangePassword)

					r.Route("/preferences", func(r chi.Router) {
						r.Get("/", userHandler.GetPreferences)
						r.Post("/", userHandler.CreatePreferences)
						r.Put("/", userHandler.UpdatePreferences)
						r.Delete("/", userHandler.DeletePreferences)
					})
				})
			})

			r.Route("/pumps", func(r chi.Router) {
				r.Get("/", pumpHandler.ListPumps)
				r.Post("/", pumpHandler.CreatePump)
				r.Route("/{pumpId}", func(r chi.Router) {
					r.Get("/", pumpHandler.GetPump)
					r.Put("/", pumpHandler.UpdatePump)
					r.Delete("/", pumpHandler.DeletePump)
				})
			})

			r.Route("/zones", func(r chi.Router) {
				r.Get("/", zoneHandler.ListZones)
				r.Post("/", zoneHandler.CreateZone)
				r.Route("/{zoneId}", func(r chi.Router) {
					r.Get("/", zoneHandler.GetZone)
					r.Put("/", zoneHandler.UpdateZone)
					r.Delete("/", zoneHandler.DeleteZone)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", scheduleHandler.ListSchedules)
				r.Post("/", scheduleHandler.CreateSchedule)
				r.Route("/{scheduleId}", func(r chi.Router) {
					r.Get("/", scheduleHandler.GetSchedule)
					r.Put("/", scheduleHandler.UpdateSchedule)
					r.Delete("/", scheduleHandler.DeleteSchedule)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.ListNotifications)
				r.Post("/", notificationHandler.CreateNotification)
				r.Route("/{notificationId}", func(r chi.Router) {
					r.Get("/", notificationHandler.GetNotification)
					r.Put("/", notificationHandler.UpdateNotification)
					r.Delete("/", notificationHandler.DeleteNotification)

					r.Route("/subscribers", func(r chi.Router) {
						r.Get("/", notificationHandler.ListSubscribers)
						r.Post("/", notificationHandler.Subscribe)
						r.Route("/{subscriberId}", func(r chi.Router) {
							r.Put("/", notificationHandler.UpdateSubscriber)
							r.Post("/seen", notificationHandler.MarkSeen)
							r.Delete("/", notificationHandler.Unsubscribe)
						})
					})
				})
			})

			r.Route("/water-usage", func(r chi.Router) {
				r.Get("/", usageHandler.ListUsage)
				r.Post("/", usageHandler.CreateUsage)
				r.Route("/{usageId}", func(r chi.Router) {
					r.Get("/", usageHandler.GetUsage)
					r.Put("/", usageHandler.UpdateUsage)
					r.Delete("/", usageHandler.DeleteUsage)
				})
			})
		})
	})

	return r
}
