package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/rates"
	"github.com/dvloznov/partner-ledger/internal/store"
	"github.com/dvloznov/partner-ledger/internal/store/inmemory"
)

func ptr(v float64) *float64 { return &v }

// newTestService returns a service over an in-memory store seeded with two
// equal partners and two income sources.
func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	svc := NewService(store.NewRepository(inmemory.NewStore()), rates.NewStatic(280))
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}

	partners := []domain.Partner{
		{ID: "p1", Name: "Alice", DisplayName: "Ali", Equity: 0.5, IsActive: true, JoinDate: domain.NewDate(2024, 1, 1)},
		{ID: "p2", Name: "Bilal", DisplayName: "Bil", Equity: 0.5, IsActive: true, JoinDate: domain.NewDate(2024, 1, 2)},
	}
	for _, p := range partners {
		if err := svc.repo.Partners.Put(ctx, p); err != nil {
			t.Fatalf("seeding partner: %v", err)
		}
	}

	sources := []domain.IncomeSource{
		{
			ID:              "upwork",
			Name:            "Upwork",
			Enabled:         true,
			FeeRule:         &domain.FeeRule{Method: domain.FeeMethodPercentage, PercentageFee: ptr(10)},
			DefaultCurrency: domain.CurrencyUSD,
		},
		{
			ID:              "local",
			Name:            "Local clients",
			Enabled:         true,
			DefaultCurrency: domain.CurrencyPKR,
			DefaultTax:      &domain.TaxConfig{Enabled: true, Type: domain.TaxTypePercentage, Value: 10},
		},
		{ID: "old", Name: "Retired", Enabled: false},
	}
	for _, s := range sources {
		if err := svc.repo.IncomeSources.Put(ctx, s); err != nil {
			t.Fatalf("seeding income source: %v", err)
		}
	}
	return svc
}

func TestAddTransaction(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		req       TransactionRequest
		wantErr   error
		wantGross float64
		wantNet   float64
		wantRate  float64
	}{
		{
			name:      "USD with explicit rate",
			req:       TransactionRequest{IncomeSourceID: "upwork", AmountUSD: 100, ConversionRate: 300},
			wantGross: 27000,
			wantNet:   27000,
			wantRate:  300,
		},
		{
			name:      "USD rate from provider",
			req:       TransactionRequest{IncomeSourceID: "upwork", AmountUSD: 100},
			wantGross: 25200,
			wantNet:   25200,
			wantRate:  280,
		},
		{
			name:      "PKR default currency and tax",
			req:       TransactionRequest{IncomeSourceID: "local", Amount: 10000},
			wantGross: 10000,
			wantNet:   9000,
			wantRate:  1,
		},
		{
			name:    "unknown source",
			req:     TransactionRequest{IncomeSourceID: "nope", AmountUSD: 100},
			wantErr: ErrUnknownIncomeSource,
		},
		{
			name:    "disabled source",
			req:     TransactionRequest{IncomeSourceID: "old", AmountUSD: 100, ConversionRate: 280},
			wantErr: ErrIncomeSourceDisabled,
		},
		{
			name:    "zero amount",
			req:     TransactionRequest{IncomeSourceID: "local", Amount: 0},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)

			tx, err := svc.AddTransaction(ctx, tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddTransaction failed: %v", err)
			}
			if tx.Calculations.GrossPKR != tt.wantGross || tx.Calculations.NetProfit != tt.wantNet {
				t.Errorf("calculations = %+v, want gross %v net %v", tx.Calculations, tt.wantGross, tt.wantNet)
			}
			if tx.ConversionRate != tt.wantRate {
				t.Errorf("ConversionRate = %v, want %v", tx.ConversionRate, tt.wantRate)
			}
			if tx.ID == "" || tx.Date != domain.NewDate(2025, 3, 10) {
				t.Errorf("expected id and default date, got %q %v", tx.ID, tx.Date)
			}

			stored, err := svc.GetTransaction(ctx, tx.ID)
			if err != nil {
				t.Fatalf("GetTransaction failed: %v", err)
			}
			if stored.Calculations != tx.Calculations {
				t.Errorf("stored calculations differ: %+v", stored.Calculations)
			}
		})
	}
}

func TestAddTransaction_NoRateAvailable(t *testing.T) {
	svc := newTestService(t)
	svc.rates = rates.NewStatic(0)

	_, err := svc.AddTransaction(context.Background(), TransactionRequest{IncomeSourceID: "upwork", AmountUSD: 100})
	if !errors.Is(err, rates.ErrNoRate) {
		t.Fatalf("err = %v, want ErrNoRate", err)
	}
}

func TestUpdateTransaction_UsesSnapshot(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.SaveDonationConfig(ctx, domain.DonationConfig{Enabled: true, Percentage: 10, TaxPreference: domain.DonateBeforeTax}); err != nil {
		t.Fatalf("SaveDonationConfig failed: %v", err)
	}
	tx, err := svc.AddTransaction(ctx, TransactionRequest{IncomeSourceID: "upwork", AmountUSD: 100, ConversionRate: 100})
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	if tx.Calculations.CharityAmount != 900 {
		t.Fatalf("CharityAmount = %v, want 900", tx.Calculations.CharityAmount)
	}

	// Later rule changes must not rewrite the edited transaction.
	if _, err := svc.SaveDonationConfig(ctx, domain.DonationConfig{Enabled: true, Percentage: 50, TaxPreference: domain.DonateBeforeTax}); err != nil {
		t.Fatalf("SaveDonationConfig failed: %v", err)
	}
	if _, err := svc.SaveIncomeSource(ctx, domain.IncomeSource{ID: "upwork", Name: "Upwork", Enabled: true}); err != nil {
		t.Fatalf("SaveIncomeSource failed: %v", err)
	}

	updated, err := svc.UpdateTransaction(ctx, tx.ID, TransactionRequest{AmountUSD: 200, ConversionRate: 100})
	if err != nil {
		t.Fatalf("UpdateTransaction failed: %v", err)
	}
	// 200 USD less 10% fee at 100 = 18000 gross, 10% donation
	if updated.Calculations.GrossPKR != 18000 || updated.Calculations.CharityAmount != 1800 {
		t.Errorf("calculations = %+v, want gross 18000 charity 1800", updated.Calculations)
	}
	if updated.ID != tx.ID || !updated.CreatedAt.Equal(tx.CreatedAt) {
		t.Errorf("identity changed: %q %v", updated.ID, updated.CreatedAt)
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.UpdateTransaction(context.Background(), "missing", TransactionRequest{AmountUSD: 1})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAddExpense(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		req         ExpenseRequest
		wantErr     error
		wantPartner string
	}{
		{
			name:        "by partner id",
			req:         ExpenseRequest{Amount: 100, PartnerID: "p2", Type: domain.ExpensePersonal},
			wantPartner: "p2",
		},
		{
			name:        "by display name",
			req:         ExpenseRequest{Amount: 100, ByWhom: "Ali", Type: domain.ExpenseCompany},
			wantPartner: "p1",
		},
		{
			name:    "unknown name",
			req:     ExpenseRequest{Amount: 100, ByWhom: "Zara", Type: domain.ExpensePersonal},
			wantErr: ErrUnknownPartner,
		},
		{
			name:    "unknown id",
			req:     ExpenseRequest{Amount: 100, PartnerID: "p9", Type: domain.ExpensePersonal},
			wantErr: ErrUnknownPartner,
		},
		{
			name:    "negative amount",
			req:     ExpenseRequest{Amount: -5, PartnerID: "p1", Type: domain.ExpensePersonal},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "bad type",
			req:     ExpenseRequest{Amount: 5, PartnerID: "p1", Type: "shared"},
			wantErr: ErrInvalidExpenseType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)

			e, err := svc.AddExpense(ctx, tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddExpense failed: %v", err)
			}
			if e.PartnerID != tt.wantPartner {
				t.Errorf("PartnerID = %q, want %q", e.PartnerID, tt.wantPartner)
			}
			if e.ByWhom == "" {
				t.Error("ByWhom should carry the partner name")
			}
		})
	}
}

func TestAddDonationPayout(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.SaveDonationConfig(ctx, domain.DonationConfig{Enabled: true, Percentage: 5, TaxPreference: domain.DonateBeforeTax}); err != nil {
		t.Fatalf("SaveDonationConfig failed: %v", err)
	}
	if _, err := svc.AddTransaction(ctx, TransactionRequest{IncomeSourceID: "local", Amount: 10000, Date: domain.NewDate(2025, 1, 5)}); err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}

	// 5% of 10000 accrued
	if _, err := svc.AddDonationPayout(ctx, PayoutRequest{Amount: 600, PaidTo: "Shelter"}); !errors.Is(err, ErrPayoutExceedsFund) {
		t.Fatalf("err = %v, want ErrPayoutExceedsFund", err)
	}
	if _, err := svc.AddDonationPayout(ctx, PayoutRequest{Amount: 500, PaidTo: "Shelter"}); err != nil {
		t.Fatalf("payout of the full fund failed: %v", err)
	}
	if _, err := svc.AddDonationPayout(ctx, PayoutRequest{Amount: 1, PaidTo: "Shelter"}); !errors.Is(err, ErrPayoutExceedsFund) {
		t.Fatalf("err = %v, want ErrPayoutExceedsFund on empty fund", err)
	}
}

func TestSaveDonationConfig_Invalid(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SaveDonationConfig(context.Background(), domain.DonationConfig{Enabled: true, Percentage: 150, TaxPreference: domain.DonateBeforeTax})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}

	warnings, err := svc.SaveDonationConfig(context.Background(), domain.DonationConfig{
		Enabled: true, Percentage: 5, TaxPreference: domain.DonateBeforeTax,
		MinimumAmount: ptr(100), MaximumAmount: ptr(50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(warnings))
	}
}

func TestSavePartner(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	p, warnings, err := svc.SavePartner(ctx, domain.Partner{Name: "Chen", Equity: 0.2, IsActive: true})
	if err != nil {
		t.Fatalf("SavePartner failed: %v", err)
	}
	if p.ID == "" || p.DisplayName != "Chen" {
		t.Errorf("expected generated id and display name, got %+v", p)
	}
	if len(warnings) != 1 {
		t.Errorf("expected an over-100%% equity warning, got %v", warnings)
	}

	_, _, err = svc.SavePartner(ctx, domain.Partner{ID: "p1", Name: "Alice", Equity: 2, IsActive: true})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}

	partners, err := svc.ListPartners(ctx)
	if err != nil {
		t.Fatalf("ListPartners failed: %v", err)
	}
	if len(partners) != 3 {
		t.Errorf("got %d partners, want 3", len(partners))
	}
}

func TestReport_FilteredWithCurrentBalances(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.AddTransaction(ctx, TransactionRequest{IncomeSourceID: "local", Amount: 10000, Date: domain.NewDate(2025, 1, 5), TaxConfig: &domain.TaxConfig{}}); err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	if _, err := svc.AddTransaction(ctx, TransactionRequest{IncomeSourceID: "local", Amount: 4000, Date: domain.NewDate(2025, 2, 5), TaxConfig: &domain.TaxConfig{}}); err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	if _, err := svc.AddExpense(ctx, ExpenseRequest{Amount: 300, PartnerID: "p1", Type: domain.ExpenseCompany, Date: domain.NewDate(2025, 2, 6)}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	february := domain.DateRange{Start: domain.NewDate(2025, 2, 1), End: domain.NewDate(2025, 2, 28)}
	report, err := svc.Report(ctx, february)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if report.Financials.TotalGrossProfit != 4000 {
		t.Errorf("filtered gross = %v, want 4000", report.Financials.TotalGrossProfit)
	}
	if report.Wallet.TotalIncome != 4000 || report.Wallet.NetAmount != 3700 {
		t.Errorf("filtered wallet flow = %+v", report.Wallet)
	}
	// all-time: 14000 earned, 300 spent
	if report.Wallet.AvailableBalance != 13700 {
		t.Errorf("AvailableBalance = %v, want all-time 13700", report.Wallet.AvailableBalance)
	}
	alice := report.PartnerWallets["p1"]
	if alice.TotalIncome != 2000 || alice.TotalExpenses != 150 || alice.AvailableBalance != 6850 {
		t.Errorf("partner wallet = %+v", alice)
	}
	if report.Counts.Transactions != 1 || report.Counts.Expenses != 1 {
		t.Errorf("counts = %+v", report.Counts)
	}

	all, err := svc.Report(ctx, domain.DateRange{})
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if all.Financials.TotalGrossProfit != 14000 || all.Wallet.AvailableBalance != all.Financials.CompanyCapital {
		t.Errorf("all-time report = %+v", all.Wallet)
	}
}

func TestMigrateExpenseAttribution(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	legacy := []domain.Expense{
		{ID: "e1", Amount: 10, ByWhom: "Alice", Type: domain.ExpensePersonal},
		{ID: "e2", Amount: 20, ByWhom: "Bil", Type: domain.ExpensePersonal},
		{ID: "e3", Amount: 30, ByWhom: "Someone", Type: domain.ExpensePersonal},
	}
	for _, e := range legacy {
		if err := svc.repo.Expenses.Put(ctx, e); err != nil {
			t.Fatalf("seeding expense: %v", err)
		}
	}

	dry, err := svc.MigrateExpenseAttribution(ctx, true)
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if dry.Attributed != 2 || len(dry.Unmatched) != 1 {
		t.Errorf("dry run = %+v", dry)
	}
	e1, _ := svc.repo.Expenses.Get(ctx, "e1")
	if e1.PartnerID != "" {
		t.Error("dry run wrote changes")
	}

	res, err := svc.MigrateExpenseAttribution(ctx, false)
	if err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	if res.Attributed != 2 {
		t.Errorf("Attributed = %d, want 2", res.Attributed)
	}
	e2, _ := svc.repo.Expenses.Get(ctx, "e2")
	if e2.PartnerID != "p2" {
		t.Errorf("e2 PartnerID = %q, want p2", e2.PartnerID)
	}

	again, err := svc.MigrateExpenseAttribution(ctx, false)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if again.Attributed != 0 {
		t.Errorf("second run attributed %d, want 0", again.Attributed)
	}
}
