package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chamroeun/posledger/internal/domain"
)

// LedgerEntryRepository defines data access for general ledger entries.
// Entries are insert-only; there is no update or delete.
type LedgerEntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.GeneralLedgerEntry) error
	GetByEntryNumber(ctx context.Context, entryNumber string) ([]*domain.GeneralLedgerEntry, error)
	GetByReference(ctx context.Context, referenceNumber string) ([]*domain.GeneralLedgerEntry, error)
	ListByBook(ctx context.Context, book domain.BookOfEntry, limit, offset int) ([]*domain.GeneralLedgerEntry, error)
	SumDebitsCredits(ctx context.Context) (debits, credits decimal.Decimal, err error)
}

// SequenceRepository defines data access for allocated document numbers.
type SequenceRepository interface {
	// LastNumber returns the greatest existing number with the prefix, or
	// empty string when none exists. Must run inside the caller's transaction.
	LastNumber(ctx context.Context, tx Transaction, prefix string) (string, error)
	// Record inserts the allocated number; a lost allocation race surfaces
	// as domain.ErrDuplicateDocumentNumber.
	Record(ctx context.Context, tx Transaction, prefix, number string, allocatedAt time.Time) error
}

// SaleRepository defines data access for sales.
type SaleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
	GetLineItems(ctx context.Context, saleID string) ([]*domain.SaleLineItem, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.SaleStatus, updatedAt time.Time) error
}

// InvoiceRepository defines data access for invoices.
type InvoiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Invoice, error)
	UpdateAmounts(ctx context.Context, tx Transaction, inv *domain.Invoice) error
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.PaymentStatus, updatedAt time.Time) error
}

// PurchaseRepository defines data access for purchases.
type PurchaseRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Purchase, error)
}

// AccountRepository defines data access for the chart of accounts.
type AccountRepository interface {
	List(ctx context.Context) ([]*domain.FinancialAccount, error)
	GetByName(ctx context.Context, name string) (*domain.FinancialAccount, error)
	ApplyToBalance(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique row IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation when it fails on a transient storage
// conflict such as a deadlock. Domain errors pass through untouched.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
