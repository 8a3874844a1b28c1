package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chamroeun/posledger/internal/adapter/http/handler"
	"github.com/chamroeun/posledger/internal/adapter/http/middleware"
	"github.com/chamroeun/posledger/internal/infrastructure/metrics"
	"github.com/chamroeun/posledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PostingHandler   *handler.PostingHandler
	CurrencyHandler  *handler.CurrencyHandler
	SequenceHandler  *handler.SequenceHandler
	AccountHandler   *handler.AccountHandler
	EntryHandler     *handler.EntryHandler
	LedgerHandler    *handler.LedgerHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	Metrics          *metrics.Metrics
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Postings
		r.Route("/postings", func(r chi.Router) {
			r.Post("/sales/{id}", cfg.PostingHandler.PostSale)
			r.Post("/purchases/{id}", cfg.PostingHandler.PostPurchase)
			r.Post("/payments/{id}", cfg.PostingHandler.PostPayment)
			r.Post("/journal", cfg.PostingHandler.PostJournal)
		})

		// Currency
		r.Route("/currency", func(r chi.Router) {
			r.Post("/convert", cfg.CurrencyHandler.Convert)
			r.Get("/detect", cfg.CurrencyHandler.Detect)
			r.Post("/change", cfg.CurrencyHandler.Change)
		})

		// Document numbers
		r.Post("/sequences", cfg.SequenceHandler.Allocate)

		// Chart of accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/lookup", cfg.AccountHandler.GetByName)
		})

		// Ledger entries
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", cfg.EntryHandler.ListByBook)
			r.Get("/reference/{reference}", cfg.EntryHandler.GetByReference)
			r.Get("/{number}", cfg.EntryHandler.GetByEntryNumber)
		})

		// Ledger-wide checks
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
