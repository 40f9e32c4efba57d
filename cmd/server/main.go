package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"scheduler/config"
	_ "scheduler/docs"
	"scheduler/internal/adapters/email"
	deliveryhttp "scheduler/internal/delivery/http"
	"scheduler/internal/delivery/http/controllers"
	"scheduler/internal/delivery/http/middleware"
	"scheduler/internal/domain"
	"scheduler/internal/repository/postgres"
	"scheduler/internal/services"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

const defaultTimeout = 10 * time.Second

// @title Scheduler API
// @version 1.0
// @description Calendar event backend with a daily email digest.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	eventService := services.NewEventService(eventRepo, defaultTimeout)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Notify.FromAddress,
		FromName:    cfg.Notify.FromName,
		Resend: email.ResendConfig{
			APIKey: cfg.Mail.ResendAPIKey,
		},
		SES: email.SESConfig{
			Region:          cfg.Mail.SESRegion,
			AccessKeyID:     cfg.Mail.SESAccessKeyID,
			SecretAccessKey: cfg.Mail.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to build mailer", "err", err)
		os.Exit(1)
	}

	// A nil mailer means the provider is not configured; the dispatcher
	// reports that per trigger instead of the process refusing to start.
	var emailService domain.EmailService
	if mailer != nil {
		emailService = services.NewEmailService(mailer, email.NewTemplateRenderer())
	}

	location := time.Local
	if cfg.Notify.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Notify.Timezone)
		if err != nil {
			logger.Error("invalid timezone", "tz", cfg.Notify.Timezone, "err", err)
			os.Exit(1)
		}
		location = loc
	}
	notifier := services.NewNotificationService(eventRepo, emailService, cfg.Notify.Recipient, location, logger, defaultTimeout)

	eventController := controllers.NewEventController(logger, eventService)
	notifyController := controllers.NewNotifyController(logger, notifier, cfg.Notify.Secret)

	mux := deliveryhttp.NewRouter(eventController, notifyController)
	var handler http.Handler = middleware.LoggingMiddleware(logger, mux)
	if cfg.AllowedOrigins != "" {
		handler = middleware.CORS(strings.Split(cfg.AllowedOrigins, ","), handler)
	}

	// Catch up on today's digest shortly after boot so a restart does not
	// skip a day, then keep dispatching on the configured schedule.
	go func() {
		select {
		case <-time.After(3 * time.Second):
		case <-ctx.Done():
			return
		}
		dispatch(ctx, logger, notifier)
	}()

	var scheduler *cron.Cron
	if cfg.Notify.Cron != "" {
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(cfg.Notify.Cron, func() {
			dispatch(ctx, logger, notifier)
		}); err != nil {
			logger.Error("invalid notify cron expression", "cron", cfg.Notify.Cron, "err", err)
			os.Exit(1)
		}
		scheduler.Start()
		logger.Info("digest schedule started", "cron", cfg.Notify.Cron)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		if scheduler != nil {
			<-scheduler.Stop().Done()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
		}
	}
}

// dispatch runs one digest pass. Trigger errors are logged and dropped;
// unsent events stay eligible for the next pass.
func dispatch(ctx context.Context, logger *slog.Logger, notifier domain.NotificationService) {
	result, err := notifier.Dispatch(ctx)
	if err != nil {
		logger.Warn("scheduled digest dispatch failed", "err", err)
		return
	}
	logger.Info("scheduled digest dispatch", "message", result.Message, "notified", result.Notified)
}
