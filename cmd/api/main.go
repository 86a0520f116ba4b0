package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/508labs/spendings/internal/infra/amqp"
	"github.com/508labs/spendings/internal/infra/postgres"
	"github.com/508labs/spendings/internal/platform/recurring"
	"github.com/508labs/spendings/internal/platform/share"
	"github.com/508labs/spendings/internal/platform/spending"
	"github.com/508labs/spendings/internal/transport/httpapi"
	"github.com/508labs/spendings/internal/transport/httpapi/handler"
	"github.com/508labs/spendings/pkg/config"
	"github.com/508labs/spendings/pkg/logger"
)

const transactionEventsQueue = "spendings.transactions"

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env when present, then configuration from the environment
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting Spendings API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Apply schema migrations before opening the pool
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize database connection pool
	db, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("Database connection established")

	store := postgres.NewStore(db.Pool)

	// Optional transaction event publisher
	var events spending.EventPublisher
	if cfg.AMQPURL != "" {
		publisher, err := amqp.NewPublisher(cfg.AMQPURL, transactionEventsQueue)
		if err != nil {
			log.Warn("Failed to connect to AMQP, event publishing disabled", "error", err)
		} else {
			defer publisher.Close()
			events = publisher
			log.Info("AMQP publisher initialized", "queue", transactionEventsQueue)
		}
	} else {
		log.Info("AMQP_URL not configured, event publishing disabled")
	}

	// Initialize services
	spendingSvc := spending.NewService(store, events, log)
	recurringSvc := recurring.NewService(store)
	shareSvc := share.NewService(store, spendingSvc)

	// Initialize HTTP handlers
	transactionHandler := handler.NewTransactionHandler(spendingSvc, cfg.DefaultListLimit)
	recurringHandler := handler.NewRecurringHandler(recurringSvc)
	shareHandler := handler.NewShareHandler(shareSvc)
	healthHandler := handler.NewHealthHandler(store)

	// Create HTTP router
	r := httpapi.NewRouter(httpapi.Config{
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins,
		TransactionHandler: transactionHandler,
		RecurringHandler:   recurringHandler,
		ShareHandler:       shareHandler,
		HealthHandler:      healthHandler,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
