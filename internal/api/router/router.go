// Package router assembles the HTTP surface: webhook, dashboard, and
// operational endpoints.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cuure-health/booking-bot/internal/admin"
	"github.com/cuure-health/booking-bot/internal/messaging"
)

// Config holds router configuration.
type Config struct {
	MessagingHandler *messaging.Handler
	AdminHandler     *admin.Handler
	MetricsHandler   http.Handler
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	if cfg == nil || cfg.MessagingHandler == nil {
		panic("router: messaging handler required")
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", cfg.MessagingHandler.HealthCheck)
	r.Get("/webhook", cfg.MessagingHandler.VerifyWebhook)
	r.Post("/webhook", cfg.MessagingHandler.InboundWebhook)

	if cfg.AdminHandler != nil {
		r.Get("/admin", cfg.AdminHandler.Dashboard)
		r.Route("/api/admin", func(api chi.Router) {
			api.Get("/appointments", cfg.AdminHandler.ListAppointments)
			api.Get("/appointments/export", cfg.AdminHandler.ExportAppointments)
		})
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
