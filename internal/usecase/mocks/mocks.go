package mocks

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chamroeun/posledger/internal/domain"
	"github.com/chamroeun/posledger/internal/usecase"
)

// MockLedgerEntryRepository is a mock implementation of LedgerEntryRepository.
// Writes made through a MockTransaction reach Entries only when that
// transaction commits; a rollback drops them, as the real store would.
type MockLedgerEntryRepository struct {
	mu      sync.RWMutex
	Entries []*domain.GeneralLedgerEntry

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, entry *domain.GeneralLedgerEntry) error
	GetByEntryNumberFunc func(ctx context.Context, entryNumber string) ([]*domain.GeneralLedgerEntry, error)
	GetByReferenceFunc   func(ctx context.Context, referenceNumber string) ([]*domain.GeneralLedgerEntry, error)
	ListByBookFunc       func(ctx context.Context, book domain.BookOfEntry, limit, offset int) ([]*domain.GeneralLedgerEntry, error)
	SumFunc              func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error)
}

func NewMockLedgerEntryRepository() *MockLedgerEntryRepository {
	return &MockLedgerEntryRepository{}
}

func (m *MockLedgerEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.GeneralLedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	onCommit(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.Entries = append(m.Entries, entry)
	})
	return nil
}

func (m *MockLedgerEntryRepository) GetByEntryNumber(ctx context.Context, entryNumber string) ([]*domain.GeneralLedgerEntry, error) {
	if m.GetByEntryNumberFunc != nil {
		return m.GetByEntryNumberFunc(ctx, entryNumber)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.GeneralLedgerEntry
	for _, e := range m.Entries {
		if e.EntryNumber == entryNumber {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockLedgerEntryRepository) GetByReference(ctx context.Context, referenceNumber string) ([]*domain.GeneralLedgerEntry, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, referenceNumber)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.GeneralLedgerEntry
	for _, e := range m.Entries {
		if e.ReferenceNumber == referenceNumber {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockLedgerEntryRepository) ListByBook(ctx context.Context, book domain.BookOfEntry, limit, offset int) ([]*domain.GeneralLedgerEntry, error) {
	if m.ListByBookFunc != nil {
		return m.ListByBookFunc(ctx, book, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.GeneralLedgerEntry
	for _, e := range m.Entries {
		if e.Book == book {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockLedgerEntryRepository) SumDebitsCredits(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	if m.SumFunc != nil {
		return m.SumFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	debits, credits := domain.SumEntries(m.Entries)
	return debits, credits, nil
}

// MockSequenceRepository is an in-memory SequenceRepository with the same
// unique constraint the real table carries, so concurrent allocation races
// surface as ErrDuplicateDocumentNumber in tests.
type MockSequenceRepository struct {
	mu      sync.Mutex
	numbers map[string]bool

	LastNumberFunc func(ctx context.Context, tx usecase.Transaction, prefix string) (string, error)
	RecordFunc     func(ctx context.Context, tx usecase.Transaction, prefix, number string, allocatedAt time.Time) error
}

func NewMockSequenceRepository() *MockSequenceRepository {
	return &MockSequenceRepository{numbers: make(map[string]bool)}
}

func (m *MockSequenceRepository) LastNumber(ctx context.Context, tx usecase.Transaction, prefix string) (string, error) {
	if m.LastNumberFunc != nil {
		return m.LastNumberFunc(ctx, tx, prefix)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var matching []string
	for n := range m.numbers {
		if len(n) > len(prefix) && n[:len(prefix)] == prefix {
			matching = append(matching, n)
		}
	}
	if len(matching) == 0 {
		return "", nil
	}
	// Numbers sharing a prefix differ only in the suffix, so length then
	// text compares them numerically even past the pad width.
	sort.Slice(matching, func(i, j int) bool {
		if len(matching[i]) != len(matching[j]) {
			return len(matching[i]) < len(matching[j])
		}
		return matching[i] < matching[j]
	})
	return matching[len(matching)-1], nil
}

func (m *MockSequenceRepository) Record(ctx context.Context, tx usecase.Transaction, prefix, number string, allocatedAt time.Time) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, tx, prefix, number, allocatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.numbers[number] {
		return domain.ErrDuplicateDocumentNumber
	}
	// The number is taken immediately, as a unique index would hold it
	// against concurrent inserters, and released again if the transaction
	// rolls back.
	m.numbers[number] = true
	onRollback(tx, func() { m.Forget(number) })
	return nil
}

// Forget drops a recorded number, mimicking a rolled-back transaction.
func (m *MockSequenceRepository) Forget(number string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.numbers, number)
}

// MockSaleRepository is a mock implementation of SaleRepository.
type MockSaleRepository struct {
	mu    sync.RWMutex
	sales map[string]*domain.Sale
	lines map[string][]*domain.SaleLineItem

	GetByIDFunc      func(ctx context.Context, id string) (*domain.Sale, error)
	GetLineItemsFunc func(ctx context.Context, saleID string) ([]*domain.SaleLineItem, error)
	UpdateStatusFunc func(ctx context.Context, tx usecase.Transaction, id string, status domain.SaleStatus, updatedAt time.Time) error
}

func NewMockSaleRepository() *MockSaleRepository {
	return &MockSaleRepository{
		sales: make(map[string]*domain.Sale),
		lines: make(map[string][]*domain.SaleLineItem),
	}
}

func (m *MockSaleRepository) Add(sale *domain.Sale, lines []*domain.SaleLineItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales[sale.ID] = sale
	m.lines[sale.ID] = lines
}

func (m *MockSaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	// A copy, as a row read would give: callers mutating the result do
	// not reach the store without an update in a committed transaction.
	if s, ok := m.sales[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrSaleNotFound
}

func (m *MockSaleRepository) GetLineItems(ctx context.Context, saleID string) ([]*domain.SaleLineItem, error) {
	if m.GetLineItemsFunc != nil {
		return m.GetLineItemsFunc(ctx, saleID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lines[saleID], nil
}

func (m *MockSaleRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.SaleStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	onCommit(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if s, ok := m.sales[id]; ok {
			s.Status = status
			s.UpdatedAt = updatedAt
		}
	})
	return nil
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository.
type MockInvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]*domain.Invoice

	GetByIDFunc          func(ctx context.Context, id string) (*domain.Invoice, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error)
	UpdateAmountsFunc    func(ctx context.Context, tx usecase.Transaction, inv *domain.Invoice) error
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{invoices: make(map[string]*domain.Invoice)}
}

func (m *MockInvoiceRepository) Add(inv *domain.Invoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[inv.ID] = inv
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inv, ok := m.invoices[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, domain.ErrInvoiceNotFound
}

// GetByIDForUpdate hands back a copy, as a row read would: mutations reach
// the store only through UpdateAmounts in a committed transaction.
func (m *MockInvoiceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	inv, ok := m.invoices[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *MockInvoiceRepository) UpdateAmounts(ctx context.Context, tx usecase.Transaction, inv *domain.Invoice) error {
	if m.UpdateAmountsFunc != nil {
		return m.UpdateAmountsFunc(ctx, tx, inv)
	}
	onCommit(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if existing, ok := m.invoices[inv.ID]; ok {
			*existing = *inv
		} else {
			m.invoices[inv.ID] = inv
		}
	})
	return nil
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	GetByIDFunc      func(ctx context.Context, id string) (*domain.Payment, error)
	UpdateStatusFunc func(ctx context.Context, tx usecase.Transaction, id string, status domain.PaymentStatus, updatedAt time.Time) error
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{payments: make(map[string]*domain.Payment)}
}

func (m *MockPaymentRepository) Add(p *domain.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[p.ID] = p
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.payments[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.PaymentStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	onCommit(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if p, ok := m.payments[id]; ok {
			p.Status = status
			p.UpdatedAt = updatedAt
		}
	})
	return nil
}

// MockPurchaseRepository is a mock implementation of PurchaseRepository.
type MockPurchaseRepository struct {
	mu        sync.RWMutex
	purchases map[string]*domain.Purchase

	GetByIDFunc func(ctx context.Context, id string) (*domain.Purchase, error)
}

func NewMockPurchaseRepository() *MockPurchaseRepository {
	return &MockPurchaseRepository{purchases: make(map[string]*domain.Purchase)}
}

func (m *MockPurchaseRepository) Add(p *domain.Purchase) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purchases[p.ID] = p
}

func (m *MockPurchaseRepository) GetByID(ctx context.Context, id string) (*domain.Purchase, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.purchases[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrPurchaseNotFound
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts []*domain.FinancialAccount

	ListFunc           func(ctx context.Context) ([]*domain.FinancialAccount, error)
	GetByNameFunc      func(ctx context.Context, name string) (*domain.FinancialAccount, error)
	ApplyToBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
}

func NewMockAccountRepository(accounts ...*domain.FinancialAccount) *MockAccountRepository {
	return &MockAccountRepository{accounts: accounts}
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.FinancialAccount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accounts, nil
}

func (m *MockAccountRepository) GetByName(ctx context.Context, name string) (*domain.FinancialAccount, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.accounts {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ApplyToBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	if m.ApplyToBalanceFunc != nil {
		return m.ApplyToBalanceFunc(ctx, tx, id, delta, updatedAt)
	}
	onCommit(tx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, a := range m.accounts {
			if a.ID == id {
				a.Balance = a.Balance.Add(delta)
				a.UpdatedAt = updatedAt
			}
		}
	})
	return nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.Mutex
	Logs []*domain.AuditLog

	CreateFunc func(ctx context.Context, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, log)
	return nil
}

// MockTransaction is a mock implementation of Transaction. Repository mocks
// stage their writes on it with OnCommit; the writes apply when the
// transaction commits and vanish when it rolls back, so tests observe the
// same all-or-nothing behavior the real store gives.
type MockTransaction struct {
	mu         sync.Mutex
	Committed  bool
	RolledBack bool
	onCommit   []func()
	onRollback []func()

	// CommitFunc, when set, runs first and can fail the commit; staged
	// writes then fall to the deferred rollback.
	CommitFunc func(ctx context.Context) error
}

// OnCommit defers fn until this transaction commits. A rollback drops it.
func (m *MockTransaction) OnCommit(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onCommit = append(m.onCommit, fn)
}

// OnRollback defers fn until this transaction rolls back. A commit drops it.
func (m *MockTransaction) OnRollback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRollback = append(m.onRollback, fn)
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		if err := m.CommitFunc(ctx); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.Committed = true
	hooks := m.onCommit
	m.onCommit, m.onRollback = nil, nil
	m.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	m.mu.Lock()
	if m.Committed || m.RolledBack {
		m.mu.Unlock()
		return nil
	}
	m.RolledBack = true
	hooks := m.onRollback
	m.onCommit, m.onRollback = nil, nil
	m.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
	return nil
}

// onCommit stages fn on tx when tx is a MockTransaction; otherwise fn runs
// immediately, so allocator tests can pass a nil transaction.
func onCommit(tx usecase.Transaction, fn func()) {
	if mtx, ok := tx.(*MockTransaction); ok && mtx != nil {
		mtx.OnCommit(fn)
		return
	}
	fn()
}

func onRollback(tx usecase.Transaction, fn func()) {
	if mtx, ok := tx.(*MockTransaction); ok && mtx != nil {
		mtx.OnRollback(fn)
	}
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu           sync.Mutex
	Transactions []*MockTransaction

	// FailCommits makes the first N transactions fail at commit with a
	// transient storage error.
	FailCommits int

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	if m.FailCommits > 0 {
		m.FailCommits--
		tx.CommitFunc = func(ctx context.Context) error {
			return errors.New("deadlock detected")
		}
	}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + strconv.Itoa(m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

var errCacheMiss = errors.New("cache miss")

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return nil, errCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
