package ledger

import (
	"context"
	"fmt"

	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/finance"
)

// RecordCounts is how many records fed a report.
type RecordCounts struct {
	Transactions    int `json:"transactions"`
	Expenses        int `json:"expenses"`
	DonationPayouts int `json:"donationPayouts"`
}

// Report is the financial position for a period. Financials and the flow
// figures of the wallets cover the period only; balances and the donation
// fund are always all-time.
type Report struct {
	Period         domain.DateRange              `json:"period"`
	Financials     domain.Financials             `json:"financials"`
	Wallet         domain.WalletStats            `json:"wallet"`
	PartnerWallets map[string]domain.WalletStats `json:"partnerWallets"`
	Partners       []domain.Partner              `json:"partners"`
	Counts         RecordCounts                  `json:"counts"`
}

// records is one consistent load of everything the aggregator needs.
type records struct {
	transactions []domain.Transaction
	expenses     []domain.Expense
	payouts      []domain.DonationPayout
	partners     domain.PartnerConfig
	active       []domain.Partner
}

func (s *Service) loadRecords(ctx context.Context) (*records, error) {
	transactions, err := s.repo.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.Expenses.List(ctx)
	if err != nil {
		return nil, err
	}
	payouts, err := s.repo.DonationPayouts.List(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := s.repo.PartnerConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &records{
		transactions: transactions,
		expenses:     expenses,
		payouts:      payouts,
		partners:     cfg,
		active:       domain.ActivePartners(cfg.Partners),
	}, nil
}

func (r *records) financials(period domain.DateRange) domain.Financials {
	return finance.CalculateFinancials(
		filterTransactions(r.transactions, period),
		filterExpenses(r.expenses, period),
		filterPayouts(r.payouts, period),
		r.active,
		r.partners,
	)
}

// Report aggregates the ledger for period. Two aggregation passes run: one
// over the period and one over all time, merged so a filtered view still
// shows current balances.
func (s *Service) Report(ctx context.Context, period domain.DateRange) (Report, error) {
	recs, err := s.loadRecords(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("Report: %w", err)
	}

	current := recs.financials(domain.DateRange{})
	filtered := current
	if !period.IsOpen() {
		filtered = recs.financials(period)
	}

	report := Report{
		Period:         period,
		Financials:     filtered,
		Wallet:         finance.GetWalletStats(filtered, &current.CompanyCapital, &current.AvailableDonationsFund),
		PartnerWallets: make(map[string]domain.WalletStats, len(recs.active)),
		Partners:       recs.active,
		Counts: RecordCounts{
			Transactions:    len(filterTransactions(recs.transactions, period)),
			Expenses:        len(filterExpenses(recs.expenses, period)),
			DonationPayouts: len(filterPayouts(recs.payouts, period)),
		},
	}
	for _, p := range recs.active {
		balance := finance.PartnerBalance(current, p.ID)
		report.PartnerWallets[p.ID] = finance.GetPartnerWalletStats(filtered, p.ID, &balance, &current.AvailableDonationsFund)
	}
	return report, nil
}
