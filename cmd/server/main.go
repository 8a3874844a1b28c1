package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/chamroeun/posledger/internal/adapter/http"
	"github.com/chamroeun/posledger/internal/adapter/http/handler"
	postgresRepo "github.com/chamroeun/posledger/internal/adapter/repository/postgres"
	redisRepo "github.com/chamroeun/posledger/internal/adapter/repository/redis"
	"github.com/chamroeun/posledger/internal/domain"
	"github.com/chamroeun/posledger/internal/infrastructure/config"
	"github.com/chamroeun/posledger/internal/infrastructure/logger"
	"github.com/chamroeun/posledger/internal/infrastructure/metrics"
	"github.com/chamroeun/posledger/internal/infrastructure/postgres"
	"github.com/chamroeun/posledger/internal/infrastructure/redis"
	"github.com/chamroeun/posledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger
	zerolog.DefaultContextLogger = &appLogger

	ctx := context.Background()

	// Exchange rate is fixed per deployment
	rate, err := decimal.NewFromString(cfg.ExchangeRateKHRPerUSD)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid exchange rate")
	}
	converter, err := domain.NewConverter(rate)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid exchange rate")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewLedgerEntryRepository(pool)
	seqRepo := postgresRepo.NewSequenceRepository(pool)
	saleRepo := postgresRepo.NewSaleRepository(pool)
	invoiceRepo := postgresRepo.NewInvoiceRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	purchaseRepo := postgresRepo.NewPurchaseRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	appMetrics := metrics.New()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, cache)
	postingUC := usecase.NewPostingUseCase(usecase.PostingConfig{
		TxManager:    txManager,
		EntryRepo:    entryRepo,
		SeqRepo:      seqRepo,
		SaleRepo:     saleRepo,
		InvoiceRepo:  invoiceRepo,
		PaymentRepo:  paymentRepo,
		PurchaseRepo: purchaseRepo,
		AccountRepo:  accountRepo,
		AuditRepo:    auditRepo,
		Accounts:     accountUC,
		Converter:    converter,
		IDGen:        idGen,
		Metrics:      appMetrics,
	}).WithRetrier(postgresRepo.NewRetrier(appLogger))
	entryUC := usecase.NewEntryUseCase(entryRepo)
	ledgerUC := usecase.NewLedgerUseCase(entryRepo).WithMetrics(appMetrics)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PostingHandler:   handler.NewPostingHandler(postingUC),
		CurrencyHandler:  handler.NewCurrencyHandler(converter),
		SequenceHandler:  handler.NewSequenceHandler(postingUC),
		AccountHandler:   handler.NewAccountHandler(accountUC),
		EntryHandler:     handler.NewEntryHandler(entryUC),
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		Metrics:          appMetrics,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("rate", rate.String()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
