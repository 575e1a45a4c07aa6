package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/api/handlers"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/api/router"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/config"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/validator"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/repository/postgres"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/services"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	log.With("environment", cfg.Server.Environment).Info("Starting back-office API server")

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	ruleRepo := postgres.NewRuleRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)
	writerRepo := postgres.NewWriterRepository(db)
	clientRepo := postgres.NewClientRepository(db)
	alertRepo := postgres.NewAlertRepository(db)

	ruleService := services.NewRuleService(ruleRepo, log)
	evaluator := services.NewEvaluatorService(ticketRepo, writerRepo, clientRepo, log)
	alertService := services.NewAlertService(alertRepo, log)
	notifier := services.NewSlackNotifier(cfg.Notify.SlackWebhookURL, cfg.Notify.SlackChannel, log)

	val := validator.New()

	h := &router.Handlers{
		Health: handlers.NewHealthHandler(db, log),
		Rule:   handlers.NewRuleHandler(ruleService, evaluator, log, val),
		Ticket: handlers.NewTicketHandler(ticketRepo, log),
		Writer: handlers.NewWriterHandler(writerRepo, log),
		Client: handlers.NewClientHandler(clientRepo, log),
		Alert:  handlers.NewAlertHandler(alertService, log, val),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Scanner.Enabled {
		scanner := worker.NewRuleScanner(ruleService, evaluator, alertService, notifier, cfg.Scanner.Schedule, log)
		go func() {
			if err := scanner.Start(ctx); err != nil {
				log.WithError(err).Error("Rule scanner stopped")
			}
		}()
	}

	go func() {
		log.With("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server exited")
}
