package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chamroeun/posledger/internal/domain"
	"github.com/chamroeun/posledger/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// GetByID returns one payment.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `
		SELECT id, payment_reference, payment_date, invoice_id, sale_id,
		       method, status, received_by, amount, currency,
		       created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	var p domain.Payment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.PaymentReference,
		&p.PaymentDate,
		&p.InvoiceID,
		&p.SaleID,
		&p.Method,
		&p.Status,
		&p.ReceivedBy,
		&p.Amount,
		&p.Currency,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPaymentNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query payment: %w", err)
	}

	return &p, nil
}

// UpdateStatus moves the payment to a new status inside the caller's
// transaction.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.PaymentStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE payments SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := pgxTx.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPaymentNotFound, id)
	}

	return nil
}
