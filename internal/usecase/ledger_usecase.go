package usecase

import (
	"context"
	"errors"

	"github.com/chamroeun/posledger/internal/infrastructure/metrics"
)

var (
	// ErrInconsistentLedger is returned when the ledger is not balanced.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	entryRepo LedgerEntryRepository
	metrics   *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(entryRepo LedgerEntryRepository) *LedgerUseCase {
	return &LedgerUseCase{entryRepo: entryRepo}
}

// WithMetrics records consistency check outcomes.
func (uc *LedgerUseCase) WithMetrics(m *metrics.Metrics) *LedgerUseCase {
	uc.metrics = m
	return uc
}

// CheckConsistency verifies that total debits equal total credits over the
// whole ledger. Manual journal entries are single-legged, so an operator
// who posts one without its counterpart will see this fail.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (bool, error) {
	debits, credits, err := uc.entryRepo.SumDebitsCredits(ctx)
	if err != nil {
		return false, err
	}

	if !debits.Equal(credits) {
		uc.check("inconsistent")
		return false, ErrInconsistentLedger
	}

	uc.check("consistent")
	return true, nil
}

func (uc *LedgerUseCase) check(result string) {
	if uc.metrics != nil {
		uc.metrics.ConsistencyChecks.WithLabelValues(result).Inc()
	}
}
