package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chamroeun/posledger/internal/domain"
)

// SequenceAllocator produces per-prefix, zero-padded, gapless document
// numbers: GL20251026-001, GL20251026-002, ...
//
// The read-increment-write is not atomic on its own. Next must run inside
// the same transaction as the insert of the numbered record; a concurrent
// caller that reads the same last number loses at the unique constraint
// and the posting retries allocation.
type SequenceAllocator struct {
	seqRepo SequenceRepository
}

// NewSequenceAllocator creates a new SequenceAllocator.
func NewSequenceAllocator(seqRepo SequenceRepository) *SequenceAllocator {
	return &SequenceAllocator{seqRepo: seqRepo}
}

// Next allocates the next number for prefix within tx and records it.
func (a *SequenceAllocator) Next(ctx context.Context, tx Transaction, prefix string, width int) (string, error) {
	last, err := a.seqRepo.LastNumber(ctx, tx, prefix)
	if err != nil {
		return "", err
	}

	seq := 1
	if last != "" {
		suffix := strings.TrimPrefix(last, prefix+"-")
		n, err := strconv.Atoi(suffix)
		if err != nil {
			// Corrupted or legacy data. Allocating past it would silently
			// fork the sequence, so fail the operation instead.
			return "", fmt.Errorf("%w: %q", domain.ErrInvalidSequenceNumber, last)
		}
		seq = n + 1
	}

	number := FormatDocumentNumber(prefix, seq, width)
	if err := a.seqRepo.Record(ctx, tx, prefix, number, time.Now().UTC()); err != nil {
		return "", err
	}

	return number, nil
}

// FormatDocumentNumber renders prefix and sequence as a document number.
func FormatDocumentNumber(prefix string, seq, width int) string {
	return fmt.Sprintf("%s-%0*d", prefix, width, seq)
}

// DatePrefix builds the conventional date-scoped prefix, e.g. GL20251026.
func DatePrefix(kind string, date time.Time) string {
	return kind + date.Format("20060102")
}
