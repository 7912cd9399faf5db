// Package summary turns a ledger report into a short narrative written by
// a language model.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dvloznov/partner-ledger/internal/config"
	"github.com/dvloznov/partner-ledger/internal/ledger"
	"github.com/dvloznov/partner-ledger/internal/money"
)

// ErrEmptySummary is returned when a provider answers with no text.
var ErrEmptySummary = errors.New("empty response from model")

// Snapshot is the input of a summary.
type Snapshot struct {
	Report      ledger.Report
	GeneratedAt time.Time
}

// Summarizer produces a markdown summary of a snapshot.
type Summarizer interface {
	Summarize(ctx context.Context, snap Snapshot) (string, error)
}

// New returns the summarizer selected by cfg.SummaryProvider.
func New(ctx context.Context, cfg *config.Config) (Summarizer, error) {
	if err := cfg.RequireSummary(); err != nil {
		return nil, err
	}
	switch cfg.SummaryProvider {
	case config.ProviderOpenAI:
		return NewOpenAISummarizer(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	case config.ProviderGemini:
		return NewGeminiSummarizer(ctx, cfg.GoogleCloudProject, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown summary provider %q", cfg.SummaryProvider)
	}
}

// BuildPrompt renders the snapshot as plain text instructions. Amounts are
// formatted so the model never has to round floats itself.
func BuildPrompt(snap Snapshot) string {
	r := snap.Report
	f := r.Financials

	var b strings.Builder
	b.WriteString("You are the bookkeeper of a small partnership that earns money from freelance platforms and local clients.\n")
	b.WriteString("Write a short summary of the financial position below for the partners.\n\n")

	b.WriteString("Rules:\n")
	b.WriteString("- Use Markdown with a heading and at most 6 bullet points.\n")
	b.WriteString("- Quote amounts exactly as given. Do not recalculate them.\n")
	b.WriteString("- Mention any outstanding loan and the partner who owes it.\n")
	b.WriteString("- Keep it under 200 words.\n\n")

	fmt.Fprintf(&b, "Period: %s\n", r.Period)
	fmt.Fprintf(&b, "Records: %d transactions, %d expenses, %d donation payouts\n\n",
		r.Counts.Transactions, r.Counts.Expenses, r.Counts.DonationPayouts)

	b.WriteString("Company:\n")
	fmt.Fprintf(&b, "- Gross profit: %s\n", money.PKR(f.TotalGrossProfit))
	fmt.Fprintf(&b, "- Net profit after donations and tax: %s\n", money.PKR(f.TotalNetProfit))
	fmt.Fprintf(&b, "- Expenses: %s (company %s, personal %s)\n",
		money.PKR(f.TotalExpenses), money.PKR(f.TotalCompanyExpenses), money.PKR(f.TotalPersonalExpenses))
	fmt.Fprintf(&b, "- Company capital: %s\n", money.PKR(r.Wallet.AvailableBalance))
	fmt.Fprintf(&b, "- Donations accrued: %s, paid: %s, fund available: %s\n",
		money.PKR(f.TotalDonationsAccrued), money.PKR(f.TotalDonationsPaid), money.PKR(r.Wallet.DonationsFund))

	if f.Loan.OwedBy != nil {
		fmt.Fprintf(&b, "- Loan: %s owed by %s\n", money.PKR(f.Loan.Amount), partnerName(r, *f.Loan.OwedBy))
	} else {
		b.WriteString("- Loan: none\n")
	}

	if len(r.Partners) > 0 {
		b.WriteString("\nPartners:\n")
		for _, p := range r.Partners {
			w := r.PartnerWallets[p.ID]
			fmt.Fprintf(&b, "- %s (%s equity): earned %s, spent %s, balance %s\n",
				displayName(p.Name, p.DisplayName), money.Percent(p.Equity*100),
				money.PKR(w.TotalIncome), money.PKR(w.TotalExpenses), money.PKR(w.AvailableBalance))
		}
	}
	return b.String()
}

func partnerName(r ledger.Report, id string) string {
	for _, p := range r.Partners {
		if p.ID == id {
			return displayName(p.Name, p.DisplayName)
		}
	}
	return id
}

func displayName(name, display string) string {
	if display != "" {
		return display
	}
	return name
}

// cleanModelText drops code fences some models wrap markdown in.
func cleanModelText(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
