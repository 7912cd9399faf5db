package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/partner-ledger/internal/api/middleware"
	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/ledger"
)

// ExpensesHandler handles expense and donation payout endpoints.
type ExpensesHandler struct {
	svc Ledger
	log zerolog.Logger
}

// NewExpensesHandler creates a new expenses handler.
func NewExpensesHandler(svc Ledger, log zerolog.Logger) *ExpensesHandler {
	return &ExpensesHandler{
		svc: svc,
		log: log,
	}
}

// ListExpenses handles GET /api/expenses
func (h *ExpensesHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	expenses, err := h.svc.ListExpenses(r.Context(), period)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to list expenses")
		return
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	middleware.WriteJSON(w, http.StatusOK, expenses)
}

// CreateExpense handles POST /api/expenses
func (h *ExpensesHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req ledger.ExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := h.svc.AddExpense(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to add expense")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, expense)
}

// DeleteExpense handles DELETE /api/expenses/{id}
func (h *ExpensesHandler) DeleteExpense(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "Failed to delete expense")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPayouts handles GET /api/donation-payouts
func (h *ExpensesHandler) ListPayouts(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	payouts, err := h.svc.ListDonationPayouts(r.Context(), period)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to list donation payouts")
		return
	}
	if payouts == nil {
		payouts = []domain.DonationPayout{}
	}
	middleware.WriteJSON(w, http.StatusOK, payouts)
}

// CreatePayout handles POST /api/donation-payouts
func (h *ExpensesHandler) CreatePayout(w http.ResponseWriter, r *http.Request) {
	var req ledger.PayoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payout, err := h.svc.AddDonationPayout(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to add donation payout")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, payout)
}
