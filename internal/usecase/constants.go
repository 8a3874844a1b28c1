package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single posting commit. Postings
	// are never retried past this automatically.
	DefaultTransactionTimeout = 10 * time.Second

	// MaxAllocationRetries bounds re-allocation after a lost sequence race
	// before the posting surfaces as a persistence failure.
	MaxAllocationRetries = 3

	// EntryNumberWidth is the zero-padded suffix width of ledger entry numbers.
	EntryNumberWidth = 3

	// Document number prefixes.
	LedgerEntryPrefix = "GL"
	InvoicePrefix     = "INV"
	PurchasePrefix    = "PO"
	PaymentPrefix     = "PAY"
	SalePrefix        = "S"

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
