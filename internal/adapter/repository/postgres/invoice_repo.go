package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chamroeun/posledger/internal/domain"
	"github.com/chamroeun/posledger/internal/usecase"
)

const invoiceColumns = `
	id, invoice_number, sale_id, customer_id, status, void_reason,
	issue_date, due_date, sub_total, tax_amount, discount_amount,
	total_amount, paid_amount, balance_amount, created_at, updated_at
`

// InvoiceRepository implements usecase.InvoiceRepository.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

// GetByID returns one invoice.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id), id)
}

// GetByIDForUpdate returns one invoice row-locked inside the caller's
// transaction, so concurrent payments against the same invoice serialize.
func (r *InvoiceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	return r.scanOne(pgxTx.QueryRow(ctx, query, id), id)
}

// UpdateAmounts writes the invoice's paid and balance amounts and status
// inside the caller's transaction.
func (r *InvoiceRepository) UpdateAmounts(ctx context.Context, tx usecase.Transaction, inv *domain.Invoice) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE invoices
		SET paid_amount = $2, balance_amount = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, inv.ID, inv.PaidAmount, inv.BalanceAmount, inv.Status, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invoice amounts: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvoiceNotFound, inv.ID)
	}

	return nil
}

func (r *InvoiceRepository) scanOne(row pgx.Row, id string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.InvoiceNumber,
		&inv.SaleID,
		&inv.CustomerID,
		&inv.Status,
		&inv.VoidReason,
		&inv.IssueDate,
		&inv.DueDate,
		&inv.SubTotal,
		&inv.TaxAmount,
		&inv.DiscountAmount,
		&inv.TotalAmount,
		&inv.PaidAmount,
		&inv.BalanceAmount,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvoiceNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("scan invoice: %w", err)
	}

	return &inv, nil
}
