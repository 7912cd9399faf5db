// Package api wires the HTTP handlers and middleware of the ledger API.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/partner-ledger/internal/api/handlers"
	"github.com/dvloznov/partner-ledger/internal/api/middleware"
	"github.com/dvloznov/partner-ledger/internal/jobs"
)

// Deps are the collaborators of the router.
type Deps struct {
	Ledger    handlers.Ledger
	Publisher jobs.Publisher
	JobStore  jobs.JobStore
	Log       zerolog.Logger
}

func methodNotAllowed(w http.ResponseWriter) {
	middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// pathID extracts the trailing id of /prefix/{id}.
func pathID(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		middleware.WriteError(w, http.StatusBadRequest, "ID is required")
		return "", false
	}
	return id, true
}

// NewRouter builds the API handler with the middleware chain applied.
func NewRouter(deps Deps) http.Handler {
	log := deps.Log

	transactionsHandler := handlers.NewTransactionsHandler(deps.Ledger, log)
	expensesHandler := handlers.NewExpensesHandler(deps.Ledger, log)
	settingsHandler := handlers.NewSettingsHandler(deps.Ledger, log)
	financialsHandler := handlers.NewFinancialsHandler(deps.Ledger, log)
	jobsHandler := handlers.NewJobsHandler(deps.Publisher, deps.JobStore, log)

	mux := http.NewServeMux()

	// Income sources endpoints
	mux.HandleFunc("/api/income-sources", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			settingsHandler.ListIncomeSources(w, r)
		case http.MethodPost:
			settingsHandler.SaveIncomeSource(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	// Partners endpoints
	mux.HandleFunc("/api/partners", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			settingsHandler.ListPartners(w, r)
		case http.MethodPost:
			settingsHandler.SavePartner(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	mux.HandleFunc("/api/settings/donation", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			settingsHandler.GetDonationConfig(w, r)
		case http.MethodPut:
			settingsHandler.SaveDonationConfig(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	// Transactions endpoints
	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.ListTransactions(w, r)
		case http.MethodPost:
			transactionsHandler.CreateTransaction(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "/api/transactions/")
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.GetTransaction(w, r, id)
		case http.MethodPut:
			transactionsHandler.UpdateTransaction(w, r, id)
		case http.MethodDelete:
			transactionsHandler.DeleteTransaction(w, r, id)
		default:
			methodNotAllowed(w)
		}
	})

	// Expenses endpoints
	mux.HandleFunc("/api/expenses", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			expensesHandler.ListExpenses(w, r)
		case http.MethodPost:
			expensesHandler.CreateExpense(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	mux.HandleFunc("/api/expenses/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			methodNotAllowed(w)
			return
		}
		if id, ok := pathID(w, r, "/api/expenses/"); ok {
			expensesHandler.DeleteExpense(w, r, id)
		}
	})

	mux.HandleFunc("/api/donation-payouts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			expensesHandler.ListPayouts(w, r)
		case http.MethodPost:
			expensesHandler.CreatePayout(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	mux.HandleFunc("/api/financials", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			financialsHandler.GetFinancials(w, r)
		} else {
			methodNotAllowed(w)
		}
	})

	// Summary and jobs endpoints
	mux.HandleFunc("/api/summaries", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			jobsHandler.EnqueueSummary(w, r)
		} else {
			methodNotAllowed(w)
		}
	})

	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			methodNotAllowed(w)
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		if id, ok := pathID(w, r, "/api/jobs/"); ok {
			jobsHandler.GetJob(w, r, id)
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	return middleware.Recovery(log)(
		middleware.RequestID(
			middleware.Logger(log)(
				middleware.CORS(mux),
			),
		),
	)
}
