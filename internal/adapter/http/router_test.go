package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chamroeun/posledger/internal/adapter/http/handler"
	apimiddleware "github.com/chamroeun/posledger/internal/adapter/http/middleware"
	"github.com/chamroeun/posledger/internal/domain"
	"github.com/chamroeun/posledger/internal/usecase"
	"github.com/chamroeun/posledger/internal/usecase/mocks"
)

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}

func newRouterConfig(t *testing.T, opts ...func(*RouterConfig)) RouterConfig {
	t.Helper()

	converter, err := domain.NewConverter(decimal.NewFromInt(4100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	accountRepo := mocks.NewMockAccountRepository()
	entryRepo := mocks.NewMockLedgerEntryRepository()
	postingUC := usecase.NewPostingUseCase(usecase.PostingConfig{
		TxManager:    mocks.NewMockTransactionManager(),
		EntryRepo:    entryRepo,
		SeqRepo:      mocks.NewMockSequenceRepository(),
		SaleRepo:     mocks.NewMockSaleRepository(),
		InvoiceRepo:  mocks.NewMockInvoiceRepository(),
		PaymentRepo:  mocks.NewMockPaymentRepository(),
		PurchaseRepo: mocks.NewMockPurchaseRepository(),
		AccountRepo:  accountRepo,
		AuditRepo:    mocks.NewMockAuditRepository(),
		Accounts:     usecase.NewAccountUseCase(accountRepo, nil),
		Converter:    converter,
		IDGen:        mocks.NewMockIDGenerator(),
	})

	cfg := RouterConfig{
		PostingHandler:  handler.NewPostingHandler(postingUC),
		CurrencyHandler: handler.NewCurrencyHandler(converter),
		SequenceHandler: handler.NewSequenceHandler(postingUC),
		AccountHandler:  handler.NewAccountHandler(usecase.NewAccountUseCase(accountRepo, nil)),
		EntryHandler:    handler.NewEntryHandler(usecase.NewEntryUseCase(entryRepo)),
		LedgerHandler:   handler.NewLedgerHandler(usecase.NewLedgerUseCase(entryRepo)),
		HealthHandler:   handler.NewHealthHandler(nil, nil),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(t, func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"amount":"1.00","from":"USD","to":"KHR"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/currency/convert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_ConsistencyEndpoint(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/consistency", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"consistent":true`) {
		t.Fatalf("expected a consistent empty ledger, got %s", rec.Body.String())
	}
}

func TestNewRouter_PostSaleUnknownSale(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	body := `{"user_id":"user-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/postings/sales/missing", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}
