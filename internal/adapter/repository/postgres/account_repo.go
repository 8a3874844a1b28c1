package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/chamroeun/posledger/internal/domain"
	"github.com/chamroeun/posledger/internal/usecase"
)

const accountColumns = `
	id, code, name, category, account_type, balance, created_at, updated_at
`

// AccountRepository implements usecase.AccountRepository on the chart of
// accounts. The chart is seeded by migration; only balances change at
// runtime.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// List returns the full chart of accounts ordered by code.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.FinancialAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM financial_accounts
		ORDER BY code
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.FinancialAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

// GetByName returns one account by its chart name.
func (r *AccountRepository) GetByName(ctx context.Context, name string) (*domain.FinancialAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM financial_accounts
		WHERE name = $1
	`

	row := r.pool.QueryRow(ctx, query, name)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", domain.ErrAccountNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	return a, nil
}

// ApplyToBalance adds delta to the running balance inside the caller's
// transaction.
func (r *AccountRepository) ApplyToBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE financial_accounts
		SET balance = balance + $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, id, delta, updatedAt)
	if err != nil {
		return fmt.Errorf("apply balance delta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %q", domain.ErrAccountNotFound, id)
	}

	return nil
}

func scanAccount(row pgx.Row) (*domain.FinancialAccount, error) {
	var a domain.FinancialAccount
	err := row.Scan(
		&a.ID,
		&a.Code,
		&a.Name,
		&a.Category,
		&a.Type,
		&a.Balance,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	return &a, nil
}
