package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chamroeun/posledger/internal/domain"
	"github.com/chamroeun/posledger/internal/infrastructure/metrics"
)

// PostingUseCase coordinates ledger posting: compute entries, allocate
// document numbers, persist everything as one atomic unit, and update the
// derived balances on linked documents. A failure anywhere leaves nothing
// behind.
type PostingUseCase struct {
	txManager    TransactionManager
	entryRepo    LedgerEntryRepository
	seqRepo      SequenceRepository
	saleRepo     SaleRepository
	invoiceRepo  InvoiceRepository
	paymentRepo  PaymentRepository
	purchaseRepo PurchaseRepository
	accountRepo  AccountRepository
	auditRepo    AuditRepository
	accounts     *AccountUseCase
	allocator    *SequenceAllocator
	factory      *LedgerEntryFactory
	converter    *domain.Converter
	idGen        IDGenerator
	retrier      Retrier
	metrics      *metrics.Metrics
}

// PostingConfig bundles the dependencies of PostingUseCase.
type PostingConfig struct {
	TxManager    TransactionManager
	EntryRepo    LedgerEntryRepository
	SeqRepo      SequenceRepository
	SaleRepo     SaleRepository
	InvoiceRepo  InvoiceRepository
	PaymentRepo  PaymentRepository
	PurchaseRepo PurchaseRepository
	AccountRepo  AccountRepository
	AuditRepo    AuditRepository
	Accounts     *AccountUseCase
	Converter    *domain.Converter
	IDGen        IDGenerator
	Metrics      *metrics.Metrics
}

// NewPostingUseCase creates a new PostingUseCase.
func NewPostingUseCase(cfg PostingConfig) *PostingUseCase {
	return &PostingUseCase{
		txManager:    cfg.TxManager,
		entryRepo:    cfg.EntryRepo,
		seqRepo:      cfg.SeqRepo,
		saleRepo:     cfg.SaleRepo,
		invoiceRepo:  cfg.InvoiceRepo,
		paymentRepo:  cfg.PaymentRepo,
		purchaseRepo: cfg.PurchaseRepo,
		accountRepo:  cfg.AccountRepo,
		auditRepo:    cfg.AuditRepo,
		accounts:     cfg.Accounts,
		allocator:    NewSequenceAllocator(cfg.SeqRepo),
		factory:      NewLedgerEntryFactory(),
		converter:    cfg.Converter,
		idGen:        cfg.IDGen,
		metrics:      cfg.Metrics,
	}
}

// WithRetrier makes each transaction attempt retry on transient storage
// conflicts. Duplicate document numbers are not transient; they keep going
// through the bounded allocation loop instead.
func (uc *PostingUseCase) WithRetrier(retrier Retrier) *PostingUseCase {
	uc.retrier = retrier
	return uc
}

// PostSaleLedger posts the ledger entries for a completed checkout and, in
// the same transaction, moves a pending sale to Completed.
func (uc *PostingUseCase) PostSaleLedger(ctx context.Context, saleID, userID string) error {
	start := time.Now()

	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if err := sale.Validate(); err != nil {
		return err
	}

	lines, err := uc.saleRepo.GetLineItems(ctx, saleID)
	if err != nil {
		return err
	}

	groups := uc.factory.SaleEntries(sale, lines, userID, time.Now().UTC())

	err = uc.postBalanced(ctx, groups, func(ctx context.Context, tx Transaction) error {
		// Transition a copy. The closure may run again in a fresh
		// transaction after a transient failure, and it must start from
		// the stored status, not a discarded attempt's mutation.
		attempt := *sale
		if attempt.Status != domain.SaleStatusPending {
			return nil
		}
		if err := attempt.Complete(); err != nil {
			return err
		}
		return uc.saleRepo.UpdateStatus(ctx, tx, attempt.ID, attempt.Status, time.Now().UTC())
	})

	uc.audit(ctx, userID, domain.AuditActionPostSale, "sale", saleID, err)
	uc.observe("sale", start, err)
	return err
}

// PostPurchaseLedger posts the ledger entries for a received purchase.
func (uc *PostingUseCase) PostPurchaseLedger(ctx context.Context, purchaseID, userID string) error {
	start := time.Now()

	purchase, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if err := purchase.Validate(); err != nil {
		return err
	}

	groups := uc.factory.PurchaseEntries(purchase, userID, time.Now().UTC())

	err = uc.postBalanced(ctx, groups, nil)

	uc.audit(ctx, userID, domain.AuditActionPostPurchase, "purchase", purchaseID, err)
	uc.observe("purchase", start, err)
	return err
}

// PostPaymentLedger posts the ledger entries for a payment, completes a
// pending payment, and rolls the payment into any linked invoice's paid and
// balance amounts, all in one transaction.
func (uc *PostingUseCase) PostPaymentLedger(ctx context.Context, paymentID, userID string) error {
	start := time.Now()

	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}

	// The ledger is kept in USD. A riel payment converts once, here, and
	// rounds at Money precision before any entry is built.
	amount, err := uc.ledgerAmount(payment)
	if err != nil {
		return err
	}

	posted := *payment
	posted.Amount = amount
	groups := uc.factory.PaymentEntries(&posted, userID, time.Now().UTC())

	err = uc.postBalanced(ctx, groups, func(ctx context.Context, tx Transaction) error {
		now := time.Now().UTC()

		// As with sales, transition a copy so a retried attempt sees the
		// stored status. The invoice needs no copy: it is re-read under
		// lock inside every attempt.
		if payment.Status == domain.PaymentStatusPending {
			attempt := *payment
			if err := attempt.Complete(); err != nil {
				return err
			}
			if err := uc.paymentRepo.UpdateStatus(ctx, tx, attempt.ID, attempt.Status, now); err != nil {
				return err
			}
		}

		if payment.InvoiceID == nil {
			return nil
		}

		inv, err := uc.invoiceRepo.GetByIDForUpdate(ctx, tx, *payment.InvoiceID)
		if err != nil {
			return err
		}
		if err := inv.ApplyPayment(amount); err != nil {
			return err
		}
		inv.UpdatedAt = now

		return uc.invoiceRepo.UpdateAmounts(ctx, tx, inv)
	})

	uc.audit(ctx, userID, domain.AuditActionPostPayment, "payment", paymentID, err)
	uc.observe("payment", start, err)
	return err
}

// PostManualJournalEntry posts a single caller-specified entry to the
// general journal.
func (uc *PostingUseCase) PostManualJournalEntry(ctx context.Context, accountName string, accountType domain.AccountType, debit, credit decimal.Decimal, description, userID string) error {
	start := time.Now()

	groups, err := uc.factory.JournalEntry(accountName, accountType, debit, credit, description, userID, time.Now().UTC())
	if err != nil {
		return err
	}

	err = uc.post(ctx, groups, nil)

	uc.audit(ctx, userID, domain.AuditActionPostJournal, "journal", accountName, err)
	uc.observe("journal", start, err)
	return err
}

// AllocateDocumentNumber allocates the next number for a prefix in its own
// transaction. Callers use it for invoice, purchase, and payment numbers
// before the document itself is created.
func (uc *PostingUseCase) AllocateDocumentNumber(ctx context.Context, prefix string, width int) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= MaxAllocationRetries; attempt++ {
		number, err := uc.allocateAttempt(ctx, prefix, width)
		if err == nil {
			if uc.metrics != nil {
				uc.metrics.NumbersAllocated.WithLabelValues(numberKind(prefix)).Inc()
			}
			return number, nil
		}
		if !errors.Is(err, domain.ErrDuplicateDocumentNumber) {
			return "", err
		}
		if uc.metrics != nil {
			uc.metrics.AllocationCollisions.Inc()
		}
		lastErr = err
	}

	return "", fmt.Errorf("%w: document number allocation kept colliding: %v", domain.ErrPersistenceFailure, lastErr)
}

func (uc *PostingUseCase) allocateAttempt(ctx context.Context, prefix string, width int) (string, error) {
	if uc.retrier == nil {
		return uc.allocateOnce(ctx, prefix, width)
	}

	var number string
	err := uc.retrier.Retry(ctx, func() error {
		var err error
		number, err = uc.allocateOnce(ctx, prefix, width)
		return err
	})
	return number, err
}

func (uc *PostingUseCase) allocateOnce(ctx context.Context, prefix string, width int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	number, err := uc.allocator.Next(ctx, tx, prefix, width)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}

	return number, nil
}

// postBalanced guards the invariant the factory enforces by construction.
// An unbalanced set is a defect in the rule table: never retried, nothing
// persisted.
func (uc *PostingUseCase) postBalanced(ctx context.Context, groups []EntryGroup, extra func(context.Context, Transaction) error) error {
	if !domain.Balanced(Flatten(groups)) {
		return domain.ErrUnbalancedEntrySet
	}
	return uc.post(ctx, groups, extra)
}

func (uc *PostingUseCase) post(ctx context.Context, groups []EntryGroup, extra func(context.Context, Transaction) error) error {
	// Resolve names to stable account IDs before touching the store, so an
	// unmapped name fails fast.
	idx, err := uc.accounts.Index(ctx)
	if err != nil {
		return err
	}
	for _, group := range groups {
		for _, e := range group {
			account, err := idx.Resolve(e.AccountName)
			if err != nil {
				return err
			}
			e.AccountID = account.ID
			if err := e.Validate(); err != nil {
				return err
			}
		}
	}

	var lastErr error
	for attempt := 0; attempt <= MaxAllocationRetries; attempt++ {
		err := uc.postAttempt(ctx, groups, extra)
		if err == nil {
			if uc.metrics != nil {
				uc.metrics.EntriesWritten.Add(float64(len(Flatten(groups))))
			}
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateDocumentNumber) {
			return err
		}
		if uc.metrics != nil {
			uc.metrics.AllocationCollisions.Inc()
		}
		lastErr = err
	}

	return fmt.Errorf("%w: entry number allocation kept colliding: %v", domain.ErrPersistenceFailure, lastErr)
}

func (uc *PostingUseCase) postAttempt(ctx context.Context, groups []EntryGroup, extra func(context.Context, Transaction) error) error {
	if uc.retrier == nil {
		return uc.postOnce(ctx, groups, extra)
	}
	return uc.retrier.Retry(ctx, func() error {
		return uc.postOnce(ctx, groups, extra)
	})
}

// postOnce runs one attempt: allocate a number per group, insert every
// entry, apply document updates, commit. The deferred rollback makes any
// failure all-or-nothing.
func (uc *PostingUseCase) postOnce(ctx context.Context, groups []EntryGroup, extra func(context.Context, Transaction) error) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	prefix := DatePrefix(LedgerEntryPrefix, now)

	for _, group := range groups {
		number, err := uc.allocator.Next(ctx, tx, prefix, EntryNumberWidth)
		if err != nil {
			return err
		}

		for _, e := range group {
			e.ID = uc.idGen.Generate()
			e.EntryNumber = number

			if err := uc.entryRepo.Create(ctx, tx, e); err != nil {
				return err
			}

			delta := domain.BalanceDelta(e.AccountType, e.Debit, e.Credit)
			if err := uc.accountRepo.ApplyToBalance(ctx, tx, e.AccountID, delta, now); err != nil {
				return err
			}
		}
	}

	if extra != nil {
		if err := extra(ctx, tx); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (uc *PostingUseCase) ledgerAmount(payment *domain.Payment) (decimal.Decimal, error) {
	if payment.Currency == "" || payment.Currency == domain.USD {
		return payment.Amount, nil
	}
	converted, err := uc.converter.Convert(payment.Amount, payment.Currency, domain.USD)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.NewMoneyFromDecimal(converted, domain.USD).Decimal(), nil
}

// observe records posting metrics; like auditing, it never affects the
// posting outcome.
func (uc *PostingUseCase) observe(source string, start time.Time, err error) {
	if uc.metrics == nil {
		return
	}
	if err != nil {
		uc.metrics.PostingErrors.WithLabelValues(source).Inc()
		return
	}
	uc.metrics.PostingsCompleted.WithLabelValues(source).Inc()
	uc.metrics.PostingDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

// numberKind strips the date from a document number prefix, leaving the
// document kind for metric labels.
func numberKind(prefix string) string {
	for i, r := range prefix {
		if r >= '0' && r <= '9' {
			return prefix[:i]
		}
	}
	return prefix
}

// audit records posting attribution; posting outcomes never depend on it.
func (uc *PostingUseCase) audit(ctx context.Context, userID string, action domain.AuditAction, resourceType, resourceID string, postErr error) {
	if uc.auditRepo == nil {
		return
	}

	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		UserID:       userID,
		Action:       string(action),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}
	if postErr != nil {
		log.Status = string(domain.AuditStatusFailure)
		log.ErrorMessage = postErr.Error()
	}

	_ = uc.auditRepo.Create(ctx, log)
}
