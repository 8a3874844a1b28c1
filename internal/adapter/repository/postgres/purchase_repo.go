package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chamroeun/posledger/internal/domain"
)

// PurchaseRepository implements usecase.PurchaseRepository.
type PurchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository creates a new PurchaseRepository.
func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

// GetByID returns one purchase.
func (r *PurchaseRepository) GetByID(ctx context.Context, id string) (*domain.Purchase, error) {
	query := `
		SELECT id, purchase_number, purchase_date, supplier_id, received_by,
		       sub_total, tax_amount, discount_amount, total_amount,
		       paid_amount, balance_amount, created_at, updated_at
		FROM purchases
		WHERE id = $1
	`

	var p domain.Purchase
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.PurchaseNumber,
		&p.PurchaseDate,
		&p.SupplierID,
		&p.ReceivedBy,
		&p.SubTotal,
		&p.TaxAmount,
		&p.DiscountAmount,
		&p.TotalAmount,
		&p.PaidAmount,
		&p.BalanceAmount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPurchaseNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query purchase: %w", err)
	}

	return &p, nil
}
