package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/partner-ledger/internal/api/middleware"
)

// FinancialsHandler serves the aggregated report.
type FinancialsHandler struct {
	svc Ledger
	log zerolog.Logger
}

// NewFinancialsHandler creates a new financials handler.
func NewFinancialsHandler(svc Ledger, log zerolog.Logger) *FinancialsHandler {
	return &FinancialsHandler{
		svc: svc,
		log: log,
	}
}

// GetFinancials handles GET /api/financials
func (h *FinancialsHandler) GetFinancials(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.svc.Report(r.Context(), period)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to compute financials")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, report)
}
