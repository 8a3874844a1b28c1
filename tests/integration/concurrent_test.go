package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/chamroeun/posledger/internal/domain"
	"github.com/chamroeun/posledger/tests/testutil"
)

func TestConcurrentAllocation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	t.Run("concurrent allocations never hand out the same number", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		uc, _ := newPostingUseCase(t, testDB)

		// Each lost race costs one attempt, and every round has a winner,
		// so the caller count must stay within the allocation retry budget.
		const callers = 4

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			numbers = make(map[string]bool)
		)

		wg.Add(callers)
		for range callers {
			go func() {
				defer wg.Done()

				number, err := uc.AllocateDocumentNumber(ctx, "INV20260828", 3)
				if err != nil {
					t.Errorf("allocation failed: %v", err)
					return
				}

				mu.Lock()
				defer mu.Unlock()
				if numbers[number] {
					t.Errorf("number %s handed out twice", number)
				}
				numbers[number] = true
			}()
		}
		wg.Wait()

		if len(numbers) != callers {
			t.Errorf("expected %d distinct numbers, got %d", callers, len(numbers))
		}
		for _, want := range []string{"INV20260828-001", "INV20260828-004"} {
			if !numbers[want] {
				t.Errorf("expected gapless run to include %s", want)
			}
		}
	})

	t.Run("concurrent sale postings keep the ledger balanced", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		uc, entryRepo := newPostingUseCase(t, testDB)

		const posters = 3

		productID := testDB.CreateTestProduct(ctx, "Coffee", decimal.RequireFromString("3.00"))
		saleIDs := make([]string, 0, posters)
		for range posters {
			sale := testDB.CreateTestSale(ctx, decimal.RequireFromString("10.00"), productID, 2)
			saleIDs = append(saleIDs, sale.ID)
		}

		var wg sync.WaitGroup
		wg.Add(posters)
		for _, saleID := range saleIDs {
			go func() {
				defer wg.Done()
				if err := uc.PostSaleLedger(ctx, saleID, "user-1"); err != nil {
					t.Errorf("failed to post sale %s: %v", saleID, err)
				}
			}()
		}
		wg.Wait()

		debits, credits, err := entryRepo.SumDebitsCredits(ctx)
		if err != nil {
			t.Fatalf("failed to sum ledger: %v", err)
		}
		if !debits.Equal(credits) {
			t.Errorf("ledger out of balance: debits %s, credits %s", debits, credits)
		}
		if !debits.Equal(decimal.RequireFromString("48.00")) {
			t.Errorf("expected total debits 48.00, got %s", debits)
		}

		cash := testDB.AccountBalance(ctx, domain.AccountCash)
		if !cash.Equal(decimal.RequireFromString("30.00")) {
			t.Errorf("expected Cash balance 30.00, got %s", cash)
		}
	})
}
