package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/finance"
	"github.com/dvloznov/partner-ledger/internal/logger"
	"github.com/dvloznov/partner-ledger/internal/store"
)

// TransactionRequest is an income entry as submitted by a user. Unset fields
// take the income source defaults.
type TransactionRequest struct {
	IncomeSourceID string            `json:"incomeSourceId"`
	Currency       domain.Currency   `json:"currency,omitempty"`
	AmountUSD      float64           `json:"amountUSD,omitempty"`
	Amount         float64           `json:"amount,omitempty"`
	ConversionRate float64           `json:"conversionRate,omitempty"`
	Date           domain.Date       `json:"date"`
	TaxRate        float64           `json:"taxRate,omitempty"`
	TaxConfig      *domain.TaxConfig `json:"taxConfig,omitempty"`
	Bank           string            `json:"bank,omitempty"`
}

// AddTransaction calculates and stores a new income transaction under the
// current donation policy.
func (s *Service) AddTransaction(ctx context.Context, req TransactionRequest) (domain.Transaction, error) {
	log := logger.FromContext(ctx)

	source, err := s.incomeSource(ctx, req.IncomeSourceID)
	if err != nil {
		return domain.Transaction{}, err
	}
	if !source.Enabled {
		return domain.Transaction{}, fmt.Errorf("AddTransaction: %s: %w", source.ID, ErrIncomeSourceDisabled)
	}

	donation, err := s.repo.DonationConfig(ctx)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("AddTransaction: %w", err)
	}

	tx, err := s.buildTransaction(ctx, req, source, donation)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("AddTransaction: %w", err)
	}
	tx.ID = s.newID()
	tx.CreatedAt = s.now()

	if err := s.repo.Transactions.Put(ctx, tx); err != nil {
		return domain.Transaction{}, fmt.Errorf("AddTransaction: %w", err)
	}

	log.Info().
		Str("transaction_id", tx.ID).
		Str("income_source_id", tx.IncomeSourceID).
		Float64("gross_pkr", tx.Calculations.GrossPKR).
		Float64("net_profit", tx.Calculations.NetProfit).
		Msg("Transaction recorded")
	return tx, nil
}

// UpdateTransaction replaces the entry fields of an existing transaction and
// recalculates it. The income source and donation policy snapshotted when the
// transaction was first entered are reused, so later rule changes do not
// rewrite history. Switching to a different income source takes that
// source's current rules.
func (s *Service) UpdateTransaction(ctx context.Context, id string, req TransactionRequest) (domain.Transaction, error) {
	existing, err := s.repo.Transactions.Get(ctx, id)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("UpdateTransaction: %w", err)
	}

	if req.IncomeSourceID == "" {
		req.IncomeSourceID = existing.IncomeSourceID
	}

	var source domain.IncomeSource
	if existing.IncomeSource != nil && req.IncomeSourceID == existing.IncomeSourceID {
		source = existing.IncomeSource.Clone()
	} else {
		source, err = s.incomeSource(ctx, req.IncomeSourceID)
		if err != nil {
			return domain.Transaction{}, err
		}
	}

	var donation domain.DonationConfig
	if existing.DonationConfig != nil {
		donation = existing.DonationConfig.Clone()
	} else {
		donation, err = s.repo.DonationConfig(ctx)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("UpdateTransaction: %w", err)
		}
	}

	tx, err := s.buildTransaction(ctx, req, source, donation)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("UpdateTransaction: %w", err)
	}
	tx.ID = existing.ID
	tx.CreatedAt = existing.CreatedAt

	if err := s.repo.Transactions.Put(ctx, tx); err != nil {
		return domain.Transaction{}, fmt.Errorf("UpdateTransaction: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("transaction_id", tx.ID).
		Float64("net_profit", tx.Calculations.NetProfit).
		Msg("Transaction updated")
	return tx, nil
}

// GetTransaction returns one transaction.
func (s *Service) GetTransaction(ctx context.Context, id string) (domain.Transaction, error) {
	return s.repo.Transactions.Get(ctx, id)
}

// DeleteTransaction removes a transaction.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.repo.Transactions.Delete(ctx, id); err != nil {
		return fmt.Errorf("DeleteTransaction: %w", err)
	}
	log := logger.FromContext(ctx)
	log.Info().Str("transaction_id", id).Msg("Transaction deleted")
	return nil
}

// ListTransactions returns the transactions dated within r, oldest first.
func (s *Service) ListTransactions(ctx context.Context, r domain.DateRange) ([]domain.Transaction, error) {
	all, err := s.repo.Transactions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: %w", err)
	}
	out := filterTransactions(all, r)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Service) incomeSource(ctx context.Context, id string) (domain.IncomeSource, error) {
	if id == "" {
		return domain.IncomeSource{}, fmt.Errorf("income source is required: %w", ErrUnknownIncomeSource)
	}
	source, err := s.repo.IncomeSources.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.IncomeSource{}, fmt.Errorf("%s: %w", id, ErrUnknownIncomeSource)
	}
	if err != nil {
		return domain.IncomeSource{}, err
	}
	return source, nil
}

// buildTransaction applies source defaults, resolves the conversion rate and
// runs the calculator.
func (s *Service) buildTransaction(ctx context.Context, req TransactionRequest, source domain.IncomeSource, donation domain.DonationConfig) (domain.Transaction, error) {
	currency := req.Currency
	if currency == "" {
		currency = source.DefaultCurrency
	}
	if currency == "" {
		currency = domain.CurrencyUSD
	}

	taxConfig := req.TaxConfig
	if taxConfig == nil && source.DefaultTax != nil {
		tax := *source.DefaultTax
		taxConfig = &tax
	}
	if taxConfig != nil {
		if err := finance.ValidateTaxConfig(*taxConfig); err != nil {
			return domain.Transaction{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	var entry finance.Entry
	switch currency {
	case domain.CurrencyPKR:
		if !validAmount(req.Amount) {
			return domain.Transaction{}, fmt.Errorf("PKR amount %v: %w", req.Amount, ErrInvalidAmount)
		}
		entry = finance.PKREntry{Amount: req.Amount}
	case domain.CurrencyUSD:
		if !validAmount(req.AmountUSD) {
			return domain.Transaction{}, fmt.Errorf("USD amount %v: %w", req.AmountUSD, ErrInvalidAmount)
		}
		rate, err := s.conversionRate(ctx, req.ConversionRate)
		if err != nil {
			return domain.Transaction{}, err
		}
		entry = finance.USDEntry{AmountUSD: req.AmountUSD, ConversionRate: rate, Source: &source}
	default:
		return domain.Transaction{}, fmt.Errorf("unsupported currency %q", currency)
	}

	input := finance.TransactionInput{
		Entry:     entry,
		TaxRate:   req.TaxRate,
		TaxConfig: taxConfig,
	}
	tx := finance.NewTransaction(input, &source, &donation)

	tx.Date = req.Date
	if tx.Date.IsZero() {
		tx.Date = domain.DateOf(s.now())
	}
	tx.Bank = req.Bank
	return tx, nil
}

func (s *Service) conversionRate(ctx context.Context, given float64) (float64, error) {
	if given > 0 {
		return given, nil
	}
	if s.rates == nil {
		return 0, fmt.Errorf("conversion rate is required for USD entries")
	}
	rate, err := s.rates.USDToPKR(ctx)
	if err != nil {
		return 0, fmt.Errorf("looking up conversion rate: %w", err)
	}
	return rate, nil
}

func filterTransactions(all []domain.Transaction, r domain.DateRange) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(all))
	for _, tx := range all {
		if r.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}
