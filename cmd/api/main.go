package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cuure-health/booking-bot/internal/admin"
	"github.com/cuure-health/booking-bot/internal/api/router"
	"github.com/cuure-health/booking-bot/internal/booking"
	"github.com/cuure-health/booking-bot/internal/calendar"
	appconfig "github.com/cuure-health/booking-bot/internal/config"
	"github.com/cuure-health/booking-bot/internal/conversation"
	"github.com/cuure-health/booking-bot/internal/messaging"
	"github.com/cuure-health/booking-bot/internal/notify"
	"github.com/cuure-health/booking-bot/internal/observability/metrics"
	"github.com/cuure-health/booking-bot/internal/schedule"
	"github.com/cuure-health/booking-bot/internal/session"
	"github.com/cuure-health/booking-bot/internal/storage"
	"github.com/cuure-health/booking-bot/internal/whatsapp"
	"github.com/cuure-health/booking-bot/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking-bot API server", "env", cfg.Env, "port", cfg.Port)

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	// Separate handle for the dashboard's database/sql queries.
	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database handle", "error", err)
		os.Exit(1)
	}
	defer func() { _ = sqlDB.Close() }()

	userRepo := storage.NewUserRepository(pool)
	appointmentRepo := storage.NewAppointmentRepository(pool)

	// Rebuild the in-memory availability and registration views from the
	// durable store.
	index := schedule.NewIndex()
	if err := index.Hydrate(ctx, appointmentRepo); err != nil {
		logger.Error("failed to hydrate availability index", "error", err)
		os.Exit(1)
	}
	userCache := conversation.NewUserCache()
	if err := userCache.Hydrate(ctx, userRepo); err != nil {
		logger.Error("failed to hydrate user cache", "error", err)
		os.Exit(1)
	}

	waClient, err := whatsapp.New(whatsapp.Config{
		BaseURL:       cfg.WhatsAppBaseURL,
		Token:         cfg.WhatsAppToken,
		PhoneNumberID: cfg.WhatsAppPhoneID,
		Logger:        logger.Logger,
	})
	if err != nil {
		logger.Error("failed to create whatsapp client", "error", err)
		os.Exit(1)
	}

	providers := booking.DefaultProviders()
	if cfg.ProvidersJSON != "" {
		providers, err = booking.ParseProviders(cfg.ProvidersJSON)
		if err != nil {
			logger.Error("invalid providers configuration", "error", err)
			os.Exit(1)
		}
	}
	roster, err := booking.NewRoster(providers)
	if err != nil {
		logger.Error("failed to create roster", "error", err)
		os.Exit(1)
	}

	var calendarClient booking.CalendarInserter
	if cfg.GoogleCalendarID != "" {
		client, err := calendar.NewClient(ctx, cfg.GoogleCalendarID, cfg.GoogleCredentialsFile,
			cfg.CalendarTimezone, cfg.ClinicName, logger)
		if err != nil {
			logger.Error("calendar disabled", "error", err)
		} else {
			calendarClient = client
		}
	} else {
		logger.Warn("calendar disabled, GOOGLE_CALENDAR_ID not set")
	}

	messagingMetrics := metrics.NewMessagingMetrics(nil)
	bookingMetrics := metrics.NewBookingMetrics(nil)

	bookingService := booking.NewService(index, roster, appointmentRepo, calendarClient,
		notify.NewProviderNotifier(waClient, logger), bookingMetrics, logger)

	prompts := conversation.Prompts{
		ClinicName:   cfg.ClinicName,
		SupportPhone: cfg.SupportPhone,
		SupportHours: cfg.SupportHours,
	}
	machine := conversation.NewMachine(index, prompts, cfg.DaysToShow, nil)
	engine := conversation.NewEngine(session.NewStore(), userCache, machine, waClient,
		bookingService, appointmentRepo, userRepo, prompts, messagingMetrics, logger)

	messagingHandler := messaging.NewHandler(engine, cfg.WhatsAppVerifyToken,
		cfg.WhatsAppAppSecret, messagingMetrics, logger)
	adminHandler := admin.NewHandler(admin.NewStore(sqlDB), logger)

	r := router.New(&router.Config{
		MessagingHandler: messagingHandler,
		AdminHandler:     adminHandler,
		MetricsHandler:   promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
