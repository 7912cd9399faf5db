package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/finance"
	"github.com/dvloznov/partner-ledger/internal/logger"
)

// fundTolerance absorbs float drift when a payout empties the fund exactly.
const fundTolerance = 1e-6

// PayoutRequest is a donation disbursement as submitted by a user.
type PayoutRequest struct {
	Amount      float64     `json:"amount"`
	Date        domain.Date `json:"date"`
	PaidTo      string      `json:"paidTo"`
	Description string      `json:"description"`
}

// AddDonationPayout records money paid out of the donation fund. The payout
// may not exceed the fund available across all time.
func (s *Service) AddDonationPayout(ctx context.Context, req PayoutRequest) (domain.DonationPayout, error) {
	log := logger.FromContext(ctx)

	if !validAmount(req.Amount) {
		return domain.DonationPayout{}, fmt.Errorf("AddDonationPayout: %v: %w", req.Amount, ErrInvalidAmount)
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return domain.DonationPayout{}, fmt.Errorf("AddDonationPayout: %w", err)
	}
	current := records.financials(domain.DateRange{})
	if req.Amount > current.AvailableDonationsFund+fundTolerance {
		return domain.DonationPayout{}, fmt.Errorf("AddDonationPayout: %v requested, %v available: %w",
			req.Amount, current.AvailableDonationsFund, ErrPayoutExceedsFund)
	}

	payout := domain.DonationPayout{
		ID:          s.newID(),
		Amount:      req.Amount,
		Date:        req.Date,
		PaidTo:      req.PaidTo,
		Description: req.Description,
	}
	if payout.Date.IsZero() {
		payout.Date = domain.DateOf(s.now())
	}

	if err := s.repo.DonationPayouts.Put(ctx, payout); err != nil {
		return domain.DonationPayout{}, fmt.Errorf("AddDonationPayout: %w", err)
	}

	log.Info().
		Str("payout_id", payout.ID).
		Str("paid_to", payout.PaidTo).
		Float64("amount", payout.Amount).
		Msg("Donation payout recorded")
	return payout, nil
}

// ListDonationPayouts returns the payouts dated within r, oldest first.
func (s *Service) ListDonationPayouts(ctx context.Context, r domain.DateRange) ([]domain.DonationPayout, error) {
	all, err := s.repo.DonationPayouts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListDonationPayouts: %w", err)
	}
	out := filterPayouts(all, r)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

// DonationConfig returns the current donation policy.
func (s *Service) DonationConfig(ctx context.Context) (domain.DonationConfig, error) {
	return s.repo.DonationConfig(ctx)
}

// SaveDonationConfig validates and stores the donation policy. It applies to
// transactions entered from now on; existing transactions keep their
// snapshot.
func (s *Service) SaveDonationConfig(ctx context.Context, cfg domain.DonationConfig) ([]*finance.ValidationError, error) {
	warnings, err := finance.ValidateDonationConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("SaveDonationConfig: %w: %w", ErrInvalidConfig, err)
	}
	if err := s.repo.SaveDonationConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("SaveDonationConfig: %w", err)
	}

	log := logger.FromContext(ctx)
	for _, w := range warnings {
		log.Warn().Str("field", w.Field).Msg(w.Message)
	}
	log.Info().
		Bool("enabled", cfg.Enabled).
		Float64("percentage", cfg.Percentage).
		Str("tax_preference", string(cfg.TaxPreference)).
		Msg("Donation config saved")
	return warnings, nil
}

func filterPayouts(all []domain.DonationPayout, r domain.DateRange) []domain.DonationPayout {
	out := make([]domain.DonationPayout, 0, len(all))
	for _, p := range all {
		if r.Contains(p.Date) {
			out = append(out, p)
		}
	}
	return out
}
