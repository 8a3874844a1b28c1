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

// SaleRepository implements usecase.SaleRepository.
type SaleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

// GetByID returns one sale.
func (r *SaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	query := `
		SELECT id, sale_number, sale_date, customer_id, cashier_id, status,
		       sub_total, tax_amount, discount_amount, total_amount,
		       paid_amount, change_amount, created_at, updated_at
		FROM sales
		WHERE id = $1
	`

	var s domain.Sale
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.SaleNumber,
		&s.SaleDate,
		&s.CustomerID,
		&s.CashierID,
		&s.Status,
		&s.SubTotal,
		&s.TaxAmount,
		&s.DiscountAmount,
		&s.TotalAmount,
		&s.PaidAmount,
		&s.ChangeAmount,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSaleNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query sale: %w", err)
	}

	return &s, nil
}

// GetLineItems returns the sale's lines joined with product cost prices.
func (r *SaleRepository) GetLineItems(ctx context.Context, saleID string) ([]*domain.SaleLineItem, error) {
	query := `
		SELECT li.id, li.sale_id, li.product_id, p.name,
		       li.quantity, li.unit_price, p.cost_price, li.line_total
		FROM sale_line_items li
		JOIN products p ON p.id = li.product_id
		WHERE li.sale_id = $1
		ORDER BY li.id
	`

	rows, err := r.pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("query sale lines: %w", err)
	}
	defer rows.Close()

	var lines []*domain.SaleLineItem
	for rows.Next() {
		var l domain.SaleLineItem
		err := rows.Scan(
			&l.ID,
			&l.SaleID,
			&l.ProductID,
			&l.ProductName,
			&l.Quantity,
			&l.UnitPrice,
			&l.CostPrice,
			&l.LineTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		lines = append(lines, &l)
	}

	return lines, rows.Err()
}

// UpdateStatus moves the sale to a new status inside the caller's
// transaction.
func (r *SaleRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.SaleStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE sales SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := pgxTx.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrSaleNotFound, id)
	}

	return nil
}
