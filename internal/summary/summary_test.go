package summary

import (
	"context"
	"strings"
	"testing"

	"github.com/dvloznov/partner-ledger/internal/config"
	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/ledger"
)

func sampleReport() ledger.Report {
	owedBy := "p1"
	return ledger.Report{
		Period: domain.DateRange{
			Start: domain.NewDate(2025, 1, 1),
			End:   domain.NewDate(2025, 1, 31),
		},
		Financials: domain.Financials{
			TotalGrossProfit:      15000,
			TotalNetProfit:        14250,
			TotalExpenses:         2650,
			TotalCompanyExpenses:  2000,
			TotalPersonalExpenses: 650,
			TotalDonationsAccrued: 750,
			Loan:                  domain.Loan{Amount: 300, OwedBy: &owedBy},
		},
		Wallet: domain.WalletStats{AvailableBalance: 11600, DonationsFund: 650},
		PartnerWallets: map[string]domain.WalletStats{
			"p1": {TotalIncome: 7125, TotalExpenses: 7425, AvailableBalance: -300},
			"p2": {TotalIncome: 7125, TotalExpenses: 100, AvailableBalance: 7025},
		},
		Partners: []domain.Partner{
			{ID: "p1", Name: "Alice", DisplayName: "Ali", Equity: 0.5, IsActive: true},
			{ID: "p2", Name: "Bilal", Equity: 0.5, IsActive: true},
		},
		Counts: ledger.RecordCounts{Transactions: 2, Expenses: 3, DonationPayouts: 1},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(Snapshot{Report: sampleReport()})

	wants := []string{
		"Period: 2025-01-01 to 2025-01-31",
		"2 transactions, 3 expenses, 1 donation payouts",
		"15,000.00",
		"11,600.00",
		"owed by Ali",
		"- Ali (50.00% equity)",
		"- Bilal (50.00% equity)",
		"7,025.00",
	}
	for _, want := range wants {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n%s", want, prompt)
		}
	}

	// Partners appear in report order.
	if strings.Index(prompt, "- Ali (") > strings.Index(prompt, "- Bilal (") {
		t.Error("partners out of order")
	}
}

func TestBuildPrompt_NoLoan(t *testing.T) {
	r := sampleReport()
	r.Financials.Loan = domain.Loan{}
	r.Partners = nil

	prompt := BuildPrompt(Snapshot{Report: r})
	if !strings.Contains(prompt, "Loan: none") {
		t.Errorf("expected no loan line\n%s", prompt)
	}
	if strings.Contains(prompt, "Partners:") {
		t.Error("partners section should be omitted")
	}
}

func TestCleanModelText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "  # Summary\n- ok  ", want: "# Summary\n- ok"},
		{name: "fenced", in: "```markdown\n# Summary\n```", want: "# Summary"},
		{name: "empty", in: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanModelText(tt.in); got != tt.want {
				t.Errorf("cleanModelText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew_RequiresCredentials(t *testing.T) {
	cfg := &config.Config{SummaryProvider: config.ProviderOpenAI}
	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("expected error without OPENAI_API_KEY")
	}

	cfg.OpenAIAPIKey = "sk-test"
	s, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := s.(*OpenAISummarizer); !ok {
		t.Errorf("got %T, want *OpenAISummarizer", s)
	}
}
