package finance

import (
	"math"
	"reflect"
	"testing"

	"github.com/dvloznov/partner-ledger/internal/domain"
)

func calculated(id string, gross, net, charity float64) domain.Transaction {
	return domain.Transaction{
		ID: id,
		Calculations: domain.TransactionCalculations{
			GrossPKR:      gross,
			NetProfit:     net,
			CharityAmount: charity,
			PartnerShare:  net,
		},
	}
}

func TestCalculateFinancials_Reconciliation(t *testing.T) {
	partners := twoPartners()
	transactions := []domain.Transaction{
		calculated("t1", 10000, 8000, 500),
		calculated("t2", 5000, 4000, 250),
	}
	expenses := []domain.Expense{
		{ID: "e1", Amount: 300, ByWhom: "Alice", Type: domain.ExpenseCompany},
	}
	payouts := []domain.DonationPayout{
		{ID: "d1", Amount: 100},
	}

	f := CalculateFinancials(transactions, expenses, payouts, partners, domain.PartnerConfig{Partners: partners})

	if f.TotalGrossProfit != 15000 {
		t.Errorf("TotalGrossProfit = %v, want 15000", f.TotalGrossProfit)
	}
	if f.TotalNetProfit != 12000 {
		t.Errorf("TotalNetProfit = %v, want 12000", f.TotalNetProfit)
	}
	if f.TotalDonationsAccrued != 750 || f.TotalDonationsPaid != 100 || f.AvailableDonationsFund != 650 {
		t.Errorf("donations = %v accrued, %v paid, %v available", f.TotalDonationsAccrued, f.TotalDonationsPaid, f.AvailableDonationsFund)
	}
	if f.TotalCompanyExpenses != 300 || f.TotalPersonalExpenses != 0 || f.TotalExpenses != 300 {
		t.Errorf("expenses = %v company, %v personal, %v total", f.TotalCompanyExpenses, f.TotalPersonalExpenses, f.TotalExpenses)
	}
	for _, p := range partners {
		if f.PartnerExpenses[p.ID] != 150 {
			t.Errorf("PartnerExpenses[%s] = %v, want 150", p.ID, f.PartnerExpenses[p.ID])
		}
		if f.PartnerEarnings[p.ID] != 6000 {
			t.Errorf("PartnerEarnings[%s] = %v, want 6000", p.ID, f.PartnerEarnings[p.ID])
		}
	}

	wantCapital := 0.0
	for _, p := range partners {
		wantCapital += f.PartnerEarnings[p.ID] - f.PartnerExpenses[p.ID]
	}
	wantCapital -= f.TotalDonationsPaid
	if f.CompanyCapital != wantCapital || f.CompanyCapital != 11600 {
		t.Errorf("CompanyCapital = %v, want %v", f.CompanyCapital, wantCapital)
	}
	if len(f.DeficitPartners) != 0 || f.Loan.Amount != 0 || f.Loan.OwedBy != nil {
		t.Errorf("expected no deficits, got %+v loan %+v", f.DeficitPartners, f.Loan)
	}
}

func TestCalculateFinancials_EmptyInputs(t *testing.T) {
	partners := twoPartners()

	f := CalculateFinancials(nil, nil, nil, partners, domain.PartnerConfig{Partners: partners})

	for _, p := range partners {
		if v, ok := f.PartnerEarnings[p.ID]; !ok || v != 0 {
			t.Errorf("PartnerEarnings[%s] = %v (present %v), want 0", p.ID, v, ok)
		}
		if v, ok := f.PartnerExpenses[p.ID]; !ok || v != 0 {
			t.Errorf("PartnerExpenses[%s] = %v (present %v), want 0", p.ID, v, ok)
		}
	}
	if f.DeficitPartners == nil {
		t.Error("DeficitPartners should be an empty slice, not nil")
	}
}

func TestCalculateFinancials_UnmatchedExpenseExcluded(t *testing.T) {
	partners := twoPartners()
	cfg := domain.PartnerConfig{Partners: partners}
	transactions := []domain.Transaction{calculated("t1", 1000, 1000, 0)}
	base := []domain.Expense{
		{ID: "e1", Amount: 100, ByWhom: "Alice", Type: domain.ExpensePersonal},
	}

	unmatched := []domain.Expense{
		{ID: "x1", Amount: 999, ByWhom: "Zara", Type: domain.ExpensePersonal},
		{ID: "x2", Amount: 555, ByWhom: "Zara", Type: domain.ExpenseCompany},
		{ID: "x3", Amount: 444, ByWhom: "", Type: domain.ExpenseCompany},
		{ID: "x4", Amount: 333, PartnerID: "gone", ByWhom: "Alice", Type: domain.ExpensePersonal},
	}

	want := CalculateFinancials(transactions, base, nil, partners, cfg)
	got := CalculateFinancials(transactions, append(append([]domain.Expense{}, base...), unmatched...), nil, partners, cfg)

	if got.TotalExpenses != want.TotalExpenses ||
		got.TotalPersonalExpenses != want.TotalPersonalExpenses ||
		got.TotalCompanyExpenses != want.TotalCompanyExpenses {
		t.Errorf("unmatched expenses changed totals: got %v/%v/%v, want %v/%v/%v",
			got.TotalExpenses, got.TotalPersonalExpenses, got.TotalCompanyExpenses,
			want.TotalExpenses, want.TotalPersonalExpenses, want.TotalCompanyExpenses)
	}
	if !reflect.DeepEqual(got.PartnerExpenses, want.PartnerExpenses) {
		t.Errorf("unmatched expenses changed partner expenses: got %v, want %v", got.PartnerExpenses, want.PartnerExpenses)
	}
}

func TestCalculateFinancials_OwnerResolution(t *testing.T) {
	partners := twoPartners()
	cfg := domain.PartnerConfig{Partners: partners}

	tests := []struct {
		name    string
		expense domain.Expense
		wantP1  float64
		wantP2  float64
	}{
		{name: "by name", expense: domain.Expense{Amount: 100, ByWhom: "Bilal", Type: domain.ExpensePersonal}, wantP2: 100},
		{name: "by display name", expense: domain.Expense{Amount: 100, ByWhom: "Ali", Type: domain.ExpensePersonal}, wantP1: 100},
		{name: "partner id wins over name", expense: domain.Expense{Amount: 100, PartnerID: "p2", ByWhom: "Alice", Type: domain.ExpensePersonal}, wantP2: 100},
		{name: "company expense ignores owner", expense: domain.Expense{Amount: 100, ByWhom: "Alice", Type: domain.ExpenseCompany}, wantP1: 50, wantP2: 50},
		{name: "unknown type skipped", expense: domain.Expense{Amount: 100, ByWhom: "Alice", Type: "shared"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := CalculateFinancials(nil, []domain.Expense{tt.expense}, nil, partners, cfg)
			if f.PartnerExpenses["p1"] != tt.wantP1 || f.PartnerExpenses["p2"] != tt.wantP2 {
				t.Errorf("PartnerExpenses = %v, want p1=%v p2=%v", f.PartnerExpenses, tt.wantP1, tt.wantP2)
			}
		})
	}
}

func TestCalculateFinancials_Deficits(t *testing.T) {
	partners := twoPartners()
	cfg := domain.PartnerConfig{Partners: partners}
	transactions := []domain.Transaction{calculated("t1", 1000, 1000, 0)}

	t.Run("largest deficit becomes loan", func(t *testing.T) {
		expenses := []domain.Expense{
			{ID: "e1", Amount: 800, ByWhom: "Alice", Type: domain.ExpensePersonal},
			{ID: "e2", Amount: 600, ByWhom: "Bilal", Type: domain.ExpensePersonal},
		}
		f := CalculateFinancials(transactions, expenses, nil, partners, cfg)

		want := []domain.Deficit{
			{PartnerID: "p1", Amount: 300},
			{PartnerID: "p2", Amount: 100},
		}
		if !reflect.DeepEqual(f.DeficitPartners, want) {
			t.Fatalf("DeficitPartners = %+v, want %+v", f.DeficitPartners, want)
		}
		if f.Loan.Amount != 300 || f.Loan.OwedBy == nil || *f.Loan.OwedBy != "p1" {
			t.Errorf("Loan = %+v, want 300 owed by p1", f.Loan)
		}
		if f.CompanyCapital != -400 {
			t.Errorf("CompanyCapital = %v, want -400", f.CompanyCapital)
		}
	})

	t.Run("ties go to first partner", func(t *testing.T) {
		expenses := []domain.Expense{
			{ID: "e1", Amount: 600, ByWhom: "Bilal", Type: domain.ExpensePersonal},
			{ID: "e2", Amount: 600, ByWhom: "Alice", Type: domain.ExpensePersonal},
		}
		f := CalculateFinancials(transactions, expenses, nil, partners, cfg)

		if f.Loan.OwedBy == nil || *f.Loan.OwedBy != "p1" || f.Loan.Amount != 100 {
			t.Errorf("Loan = %+v, want 100 owed by p1", f.Loan)
		}
	})
}

func TestCalculateFinancials_SkipsNonFinite(t *testing.T) {
	partners := twoPartners()
	cfg := domain.PartnerConfig{Partners: partners}

	f := CalculateFinancials(
		[]domain.Transaction{calculated("bad", math.NaN(), 1, 0), calculated("ok", 100, 100, 0)},
		[]domain.Expense{{ID: "bad", Amount: math.Inf(1), ByWhom: "Alice", Type: domain.ExpensePersonal}},
		[]domain.DonationPayout{{ID: "bad", Amount: math.NaN()}},
		partners, cfg,
	)

	if f.TotalGrossProfit != 100 || f.TotalExpenses != 0 || f.TotalDonationsPaid != 0 {
		t.Errorf("non-finite records leaked into totals: %+v", f)
	}
}

func TestCalculateFinancials_Idempotent(t *testing.T) {
	partners := []domain.Partner{
		{ID: "p1", Name: "Alice", Equity: 0.37, IsActive: true},
		{ID: "p2", Name: "Bilal", Equity: 0.41, IsActive: true},
		{ID: "p3", Name: "Chen", Equity: 0.22, IsActive: true},
	}
	cfg := domain.PartnerConfig{Partners: partners}

	var transactions []domain.Transaction
	var expenses []domain.Expense
	for i := 0; i < 50; i++ {
		v := float64(i)*123.457 + 0.1
		transactions = append(transactions, calculated("t", v*3, v*2.3, v*0.07))
		typ := domain.ExpensePersonal
		if i%3 == 0 {
			typ = domain.ExpenseCompany
		}
		expenses = append(expenses, domain.Expense{Amount: v * 1.9, ByWhom: partners[i%3].Name, Type: typ})
	}
	payouts := []domain.DonationPayout{{Amount: 17.3}, {Amount: 0.1}}

	first := CalculateFinancials(transactions, expenses, payouts, partners, cfg)
	second := CalculateFinancials(transactions, expenses, payouts, partners, cfg)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("CalculateFinancials is not idempotent")
	}
	if math.Float64bits(first.CompanyCapital) != math.Float64bits(second.CompanyCapital) {
		t.Error("CompanyCapital differs bitwise between runs")
	}
}
