// Package ledger records income, expenses and donation payouts and reports
// on them. It owns validation and defaults at entry time; every figure is
// computed by package finance.
package ledger

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/partner-ledger/internal/rates"
	"github.com/dvloznov/partner-ledger/internal/store"
)

var (
	// ErrUnknownIncomeSource is returned when a transaction names a missing source.
	ErrUnknownIncomeSource = errors.New("unknown income source")
	// ErrIncomeSourceDisabled is returned when a transaction names a disabled source.
	ErrIncomeSourceDisabled = errors.New("income source is disabled")
	// ErrUnknownPartner is returned when an expense owner cannot be resolved.
	ErrUnknownPartner = errors.New("unknown partner")
	// ErrInvalidAmount is returned for zero, negative or non-finite amounts.
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrInvalidExpenseType is returned for expense types other than personal or company.
	ErrInvalidExpenseType = errors.New("expense type must be personal or company")
	// ErrPayoutExceedsFund is returned when a payout is larger than the available donation fund.
	ErrPayoutExceedsFund = errors.New("payout exceeds available donation fund")
	// ErrInvalidConfig is returned when configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Service is the ledger application service.
type Service struct {
	repo  *store.Repository
	rates rates.Provider
	now   func() time.Time
	newID func() string
}

// NewService creates a Service. rateProvider may be nil when every USD entry
// carries its own conversion rate.
func NewService(repo *store.Repository, rateProvider rates.Provider) *Service {
	return &Service{
		repo:  repo,
		rates: rateProvider,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Repository returns the underlying repository.
func (s *Service) Repository() *store.Repository {
	return s.repo
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
