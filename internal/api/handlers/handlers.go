// Package handlers implements the HTTP endpoints of the ledger API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/partner-ledger/internal/api/middleware"
	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/finance"
	"github.com/dvloznov/partner-ledger/internal/ledger"
	"github.com/dvloznov/partner-ledger/internal/rates"
	"github.com/dvloznov/partner-ledger/internal/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Ledger is the part of ledger.Service the handlers use.
type Ledger interface {
	AddTransaction(ctx context.Context, req ledger.TransactionRequest) (domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, req ledger.TransactionRequest) (domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context, r domain.DateRange) ([]domain.Transaction, error)

	AddExpense(ctx context.Context, req ledger.ExpenseRequest) (domain.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	ListExpenses(ctx context.Context, r domain.DateRange) ([]domain.Expense, error)

	AddDonationPayout(ctx context.Context, req ledger.PayoutRequest) (domain.DonationPayout, error)
	ListDonationPayouts(ctx context.Context, r domain.DateRange) ([]domain.DonationPayout, error)
	DonationConfig(ctx context.Context) (domain.DonationConfig, error)
	SaveDonationConfig(ctx context.Context, cfg domain.DonationConfig) ([]*finance.ValidationError, error)

	ListPartners(ctx context.Context) ([]domain.Partner, error)
	SavePartner(ctx context.Context, p domain.Partner) (domain.Partner, []*finance.ValidationError, error)
	ListIncomeSources(ctx context.Context) ([]domain.IncomeSource, error)
	SaveIncomeSource(ctx context.Context, source domain.IncomeSource) (domain.IncomeSource, error)

	Report(ctx context.Context, period domain.DateRange) (ledger.Report, error)
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// parsePeriod reads the optional start_date and end_date query parameters.
// Missing bounds leave the range open.
func parsePeriod(r *http.Request) (domain.DateRange, error) {
	query := r.URL.Query()

	start, err := domain.ParseDate(query.Get("start_date"))
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := domain.ParseDate(query.Get("end_date"))
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid end_date: %w", err)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return domain.DateRange{}, errors.New("end_date is before start_date")
	}
	return domain.DateRange{Start: start, End: end}, nil
}

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrUnknownIncomeSource),
		errors.Is(err, ledger.ErrUnknownPartner),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidExpenseType),
		errors.Is(err, ledger.ErrInvalidConfig),
		errors.Is(err, rates.ErrNoRate):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrIncomeSourceDisabled),
		errors.Is(err, ledger.ErrPayoutExceedsFund):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError logs err and writes the matching error response.
// Client errors echo the error text; server errors use fallback.
func writeServiceError(w http.ResponseWriter, log zerolog.Logger, err error, fallback string) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg(fallback)
		middleware.WriteError(w, status, fallback)
		return
	}
	log.Warn().Err(err).Int("status", status).Msg("Request rejected")
	middleware.WriteError(w, status, err.Error())
}
