package usecase

import (
	"context"

	"github.com/chamroeun/posledger/internal/domain"
)

// EntryUseCase handles read access to ledger entries for reporting. Reads
// never take locks and never block posting.
type EntryUseCase struct {
	entryRepo LedgerEntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo LedgerEntryRepository) *EntryUseCase {
	return &EntryUseCase{entryRepo: entryRepo}
}

// ListByBookInput represents input for listing entries by book.
type ListByBookInput struct {
	Book   domain.BookOfEntry
	Limit  int
	Offset int
}

// ListByBook lists entries belonging to one book of entry.
func (uc *EntryUseCase) ListByBook(ctx context.Context, input ListByBookInput) ([]*domain.GeneralLedgerEntry, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.entryRepo.ListByBook(ctx, input.Book, input.Limit, input.Offset)
}

// GetByEntryNumber returns all legs sharing one entry number.
func (uc *EntryUseCase) GetByEntryNumber(ctx context.Context, entryNumber string) ([]*domain.GeneralLedgerEntry, error) {
	return uc.entryRepo.GetByEntryNumber(ctx, entryNumber)
}

// GetByReference returns all entries generated for one document number.
func (uc *EntryUseCase) GetByReference(ctx context.Context, referenceNumber string) ([]*domain.GeneralLedgerEntry, error) {
	return uc.entryRepo.GetByReference(ctx, referenceNumber)
}
