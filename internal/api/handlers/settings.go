package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/partner-ledger/internal/api/middleware"
	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/finance"
)

// SettingsHandler handles partners, income sources and the donation policy.
type SettingsHandler struct {
	svc Ledger
	log zerolog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(svc Ledger, log zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		svc: svc,
		log: log,
	}
}

func nonNilWarnings(warnings []*finance.ValidationError) []*finance.ValidationError {
	if warnings == nil {
		return []*finance.ValidationError{}
	}
	return warnings
}

// ListPartners handles GET /api/partners
func (h *SettingsHandler) ListPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.svc.ListPartners(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to list partners")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"partners": partners,
		"count":    len(partners),
	})
}

// SavePartner handles POST /api/partners
func (h *SettingsHandler) SavePartner(w http.ResponseWriter, r *http.Request) {
	var p domain.Partner
	if !decodeJSON(w, r, &p) {
		return
	}

	saved, warnings, err := h.svc.SavePartner(r.Context(), p)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to save partner")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"partner":  saved,
		"warnings": nonNilWarnings(warnings),
	})
}

// ListIncomeSources handles GET /api/income-sources
func (h *SettingsHandler) ListIncomeSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.svc.ListIncomeSources(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to list income sources")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"incomeSources": sources,
		"count":         len(sources),
	})
}

// SaveIncomeSource handles POST /api/income-sources
func (h *SettingsHandler) SaveIncomeSource(w http.ResponseWriter, r *http.Request) {
	var source domain.IncomeSource
	if !decodeJSON(w, r, &source) {
		return
	}

	saved, err := h.svc.SaveIncomeSource(r.Context(), source)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to save income source")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, saved)
}

// GetDonationConfig handles GET /api/settings/donation
func (h *SettingsHandler) GetDonationConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.DonationConfig(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to load donation settings")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, cfg)
}

// SaveDonationConfig handles PUT /api/settings/donation
func (h *SettingsHandler) SaveDonationConfig(w http.ResponseWriter, r *http.Request) {
	var cfg domain.DonationConfig
	if !decodeJSON(w, r, &cfg) {
		return
	}

	warnings, err := h.svc.SaveDonationConfig(r.Context(), cfg)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to save donation settings")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"donation": cfg,
		"warnings": nonNilWarnings(warnings),
	})
}
