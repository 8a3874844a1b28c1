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

// SequenceRepository implements usecase.SequenceRepository on the
// document_numbers table. The unique constraint on number is what turns a
// lost allocation race into domain.ErrDuplicateDocumentNumber.
type SequenceRepository struct {
	pool *pgxpool.Pool
}

// NewSequenceRepository creates a new SequenceRepository.
func NewSequenceRepository(pool *pgxpool.Pool) *SequenceRepository {
	return &SequenceRepository{pool: pool}
}

// LastNumber returns the numerically greatest allocated number with the
// prefix, or empty string when none exists. Numbers within a prefix differ
// only in the suffix, and a sequence that has outgrown its pad has a longer
// suffix, so ordering by length before text compares them numerically.
func (r *SequenceRepository) LastNumber(ctx context.Context, tx usecase.Transaction, prefix string) (string, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT number FROM document_numbers
		WHERE prefix = $1
		ORDER BY length(number) DESC, number DESC
		LIMIT 1
	`

	var number string
	err := pgxTx.QueryRow(ctx, query, prefix).Scan(&number)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query last document number: %w", err)
	}

	return number, nil
}

// Record inserts the allocated number inside the caller's transaction.
func (r *SequenceRepository) Record(ctx context.Context, tx usecase.Transaction, prefix, number string, allocatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO document_numbers (prefix, number, allocated_at)
		VALUES ($1, $2, $3)
	`

	if _, err := pgxTx.Exec(ctx, query, prefix, number, allocatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateDocumentNumber, number)
		}
		return fmt.Errorf("record document number: %w", err)
	}

	return nil
}
