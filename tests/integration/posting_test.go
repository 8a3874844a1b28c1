package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/chamroeun/posledger/internal/adapter/repository/postgres"
	"github.com/chamroeun/posledger/internal/domain"
	"github.com/chamroeun/posledger/internal/infrastructure/logger"
	"github.com/chamroeun/posledger/internal/usecase"
	"github.com/chamroeun/posledger/tests/testutil"
)

func newPostingUseCase(t *testing.T, db *testutil.TestDB) (*usecase.PostingUseCase, *postgres.LedgerEntryRepository) {
	t.Helper()

	converter, err := domain.NewConverter(decimal.NewFromInt(4100))
	if err != nil {
		t.Fatalf("failed to build converter: %v", err)
	}

	accountRepo := postgres.NewAccountRepository(db.Pool)
	entryRepo := postgres.NewLedgerEntryRepository(db.Pool)
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	uc := usecase.NewPostingUseCase(usecase.PostingConfig{
		TxManager:    postgres.NewTxManager(db.Pool),
		EntryRepo:    entryRepo,
		SeqRepo:      postgres.NewSequenceRepository(db.Pool),
		SaleRepo:     postgres.NewSaleRepository(db.Pool),
		InvoiceRepo:  postgres.NewInvoiceRepository(db.Pool),
		PaymentRepo:  postgres.NewPaymentRepository(db.Pool),
		PurchaseRepo: postgres.NewPurchaseRepository(db.Pool),
		AccountRepo:  accountRepo,
		AuditRepo:    postgres.NewAuditRepository(db.Pool),
		Accounts:     usecase.NewAccountUseCase(accountRepo, nil),
		Converter:    converter,
		IDGen:        postgres.NewULIDGenerator(),
	}).WithRetrier(postgres.NewRetrier(log))

	return uc, entryRepo
}

func TestPostingIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	t.Run("sale posting writes a balanced ledger and updates balances", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		uc, entryRepo := newPostingUseCase(t, testDB)

		productID := testDB.CreateTestProduct(ctx, "Coffee", decimal.RequireFromString("3.00"))
		sale := testDB.CreateTestSale(ctx, decimal.RequireFromString("10.00"), productID, 2)

		if err := uc.PostSaleLedger(ctx, sale.ID, "user-1"); err != nil {
			t.Fatalf("failed to post sale: %v", err)
		}

		debits, credits, err := entryRepo.SumDebitsCredits(ctx)
		if err != nil {
			t.Fatalf("failed to sum ledger: %v", err)
		}
		if !debits.Equal(credits) {
			t.Errorf("ledger out of balance: debits %s, credits %s", debits, credits)
		}
		if !debits.Equal(decimal.RequireFromString("16.00")) {
			t.Errorf("expected total debits 16.00, got %s", debits)
		}

		cash := testDB.AccountBalance(ctx, domain.AccountCash)
		if !cash.Equal(decimal.RequireFromString("10.00")) {
			t.Errorf("expected Cash balance 10.00, got %s", cash)
		}
		inventory := testDB.AccountBalance(ctx, domain.AccountInventory)
		if !inventory.Equal(decimal.RequireFromString("-6.00")) {
			t.Errorf("expected Inventory balance -6.00, got %s", inventory)
		}

		saleRepo := postgres.NewSaleRepository(testDB.Pool)
		got, err := saleRepo.GetByID(ctx, sale.ID)
		if err != nil {
			t.Fatalf("failed to reload sale: %v", err)
		}
		if got.Status != domain.SaleStatusCompleted {
			t.Errorf("expected sale Completed, got %s", got.Status)
		}
	})

	t.Run("riel payment settles a dollar invoice", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		uc, _ := newPostingUseCase(t, testDB)

		inv := testDB.CreateTestInvoice(ctx, decimal.RequireFromString("50.00"))
		payment := testDB.CreateTestPayment(ctx, decimal.NewFromInt(205000), domain.KHR, &inv.ID)

		if err := uc.PostPaymentLedger(ctx, payment.ID, "user-1"); err != nil {
			t.Fatalf("failed to post payment: %v", err)
		}

		invRepo := postgres.NewInvoiceRepository(testDB.Pool)
		got, err := invRepo.GetByID(ctx, inv.ID)
		if err != nil {
			t.Fatalf("failed to reload invoice: %v", err)
		}
		if got.Status != domain.InvoiceStatusPaid {
			t.Errorf("expected invoice Paid, got %s", got.Status)
		}
		if !got.BalanceAmount.IsZero() {
			t.Errorf("expected zero balance, got %s", got.BalanceAmount)
		}

		cash := testDB.AccountBalance(ctx, domain.AccountCash)
		if !cash.Equal(decimal.RequireFromString("50.00")) {
			t.Errorf("expected Cash balance 50.00, got %s", cash)
		}
	})

	t.Run("unpaid purchase goes through accounts payable", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		uc, _ := newPostingUseCase(t, testDB)

		purchase := testDB.CreateTestPurchase(ctx,
			decimal.RequireFromString("80.00"), decimal.Zero)

		if err := uc.PostPurchaseLedger(ctx, purchase.ID, "user-1"); err != nil {
			t.Fatalf("failed to post purchase: %v", err)
		}

		payable := testDB.AccountBalance(ctx, domain.AccountAccountsPayable)
		if !payable.Equal(decimal.RequireFromString("80.00")) {
			t.Errorf("expected Accounts Payable balance 80.00, got %s", payable)
		}
		inventory := testDB.AccountBalance(ctx, domain.AccountInventory)
		if !inventory.Equal(decimal.RequireFromString("80.00")) {
			t.Errorf("expected Inventory balance 80.00, got %s", inventory)
		}
	})

	t.Run("posting an unknown sale leaves nothing behind", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		uc, entryRepo := newPostingUseCase(t, testDB)

		err := uc.PostSaleLedger(ctx, "missing", "user-1")
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		debits, credits, err := entryRepo.SumDebitsCredits(ctx)
		if err != nil {
			t.Fatalf("failed to sum ledger: %v", err)
		}
		if !debits.IsZero() || !credits.IsZero() {
			t.Errorf("expected empty ledger, got debits %s credits %s", debits, credits)
		}
	})

	t.Run("consistency check passes after mixed postings", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		uc, entryRepo := newPostingUseCase(t, testDB)

		productID := testDB.CreateTestProduct(ctx, "Tea", decimal.RequireFromString("1.50"))
		sale := testDB.CreateTestSale(ctx, decimal.RequireFromString("4.00"), productID, 1)
		purchase := testDB.CreateTestPurchase(ctx,
			decimal.RequireFromString("30.00"), decimal.RequireFromString("30.00"))

		if err := uc.PostSaleLedger(ctx, sale.ID, "user-1"); err != nil {
			t.Fatalf("failed to post sale: %v", err)
		}
		if err := uc.PostPurchaseLedger(ctx, purchase.ID, "user-1"); err != nil {
			t.Fatalf("failed to post purchase: %v", err)
		}

		ledgerUC := usecase.NewLedgerUseCase(entryRepo)
		consistent, err := ledgerUC.CheckConsistency(ctx)
		if err != nil {
			t.Fatalf("consistency check failed: %v", err)
		}
		if !consistent {
			t.Error("expected consistent ledger")
		}
	})
}
