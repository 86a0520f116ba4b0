package httpapi

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/508labs/spendings/internal/transport/httpapi/handler"
	"github.com/508labs/spendings/internal/transport/httpapi/middleware"
	"github.com/508labs/spendings/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger             *logger.Logger
	AllowedOrigins     []string
	TransactionHandler *handler.TransactionHandler
	RecurringHandler   *handler.RecurringHandler
	ShareHandler       *handler.ShareHandler
	HealthHandler      *handler.HealthHandler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit()) // Rate limiting: 100 req/s with burst of 20

	// Service banner and health endpoints
	r.Get("/", handler.GetRoot)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)
	if cfg.HealthHandler != nil {
		r.Get("/health/detailed", cfg.HealthHandler.GetHealthDetailed)
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		if cfg.TransactionHandler != nil {
			r.Post("/transactions", cfg.TransactionHandler.CreateTransaction)
			r.Get("/transactions", cfg.TransactionHandler.ListTransactions)
			r.Get("/balance", cfg.TransactionHandler.GetBalance)
			r.Get("/categories", cfg.TransactionHandler.GetCategoryTotals)
		}

		if cfg.RecurringHandler != nil {
			r.Post("/recurring", cfg.RecurringHandler.CreateRecurring)
			r.Get("/recurring", cfg.RecurringHandler.ListRecurring)
			r.Get("/reminders", cfg.RecurringHandler.GetReminders)
		}

		if cfg.ShareHandler != nil {
			r.Post("/share", cfg.ShareHandler.CreateShare)
			r.Get("/share/{token}", cfg.ShareHandler.GetSharedDashboard)
		}
	})

	return r
}
