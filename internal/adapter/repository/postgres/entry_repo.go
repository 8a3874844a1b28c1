package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/chamroeun/posledger/internal/domain"
	"github.com/chamroeun/posledger/internal/usecase"
)

const entryColumns = `
	id, entry_number, entry_date, account_id, account_name, account_type,
	debit, credit, description, reference_number, book,
	sale_id, purchase_id, payment_id, created_by, created_at
`

// LedgerEntryRepository implements usecase.LedgerEntryRepository. The table
// is insert-only; corrections are posted as offsetting entries.
type LedgerEntryRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerEntryRepository creates a new LedgerEntryRepository.
func NewLedgerEntryRepository(pool *pgxpool.Pool) *LedgerEntryRepository {
	return &LedgerEntryRepository{pool: pool}
}

// Create inserts one entry leg inside the caller's transaction.
func (r *LedgerEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.GeneralLedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO general_ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := pgxTx.Exec(ctx, query,
		entry.ID,
		entry.EntryNumber,
		entry.EntryDate,
		entry.AccountID,
		entry.AccountName,
		entry.AccountType,
		entry.Debit,
		entry.Credit,
		entry.Description,
		entry.ReferenceNumber,
		entry.Book,
		entry.SaleID,
		entry.PurchaseID,
		entry.PaymentID,
		entry.CreatedBy,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}

	return nil
}

// GetByEntryNumber returns all legs sharing one entry number.
func (r *LedgerEntryRepository) GetByEntryNumber(ctx context.Context, entryNumber string) ([]*domain.GeneralLedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM general_ledger_entries
		WHERE entry_number = $1
		ORDER BY debit DESC, id
	`

	rows, err := r.pool.Query(ctx, query, entryNumber)
	if err != nil {
		return nil, fmt.Errorf("query entries by number: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByReference returns all entries generated for one document number.
func (r *LedgerEntryRepository) GetByReference(ctx context.Context, referenceNumber string) ([]*domain.GeneralLedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM general_ledger_entries
		WHERE reference_number = $1
		ORDER BY entry_number, debit DESC, id
	`

	rows, err := r.pool.Query(ctx, query, referenceNumber)
	if err != nil {
		return nil, fmt.Errorf("query entries by reference: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByBook lists entries belonging to one book of entry, newest first.
func (r *LedgerEntryRepository) ListByBook(ctx context.Context, book domain.BookOfEntry, limit, offset int) ([]*domain.GeneralLedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM general_ledger_entries
		WHERE book = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, book, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query entries by book: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// SumDebitsCredits totals both sides over the whole ledger.
func (r *LedgerEntryRepository) SumDebitsCredits(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM general_ledger_entries
	`

	var debits, credits decimal.Decimal
	if err := r.pool.QueryRow(ctx, query).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum ledger sides: %w", err)
	}

	return debits, credits, nil
}

func scanEntries(rows pgx.Rows) ([]*domain.GeneralLedgerEntry, error) {
	var entries []*domain.GeneralLedgerEntry
	for rows.Next() {
		var e domain.GeneralLedgerEntry
		err := rows.Scan(
			&e.ID,
			&e.EntryNumber,
			&e.EntryDate,
			&e.AccountID,
			&e.AccountName,
			&e.AccountType,
			&e.Debit,
			&e.Credit,
			&e.Description,
			&e.ReferenceNumber,
			&e.Book,
			&e.SaleID,
			&e.PurchaseID,
			&e.PaymentID,
			&e.CreatedBy,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
