// Package finance holds the financial calculation core: income source fees,
// per-transaction values (conversion, tax, donation, partner share), equity
// splitting, aggregation of all records into a Financials snapshot, and the
// wallet projection shown to users.
//
// Every function here is pure and total. Nothing touches storage, nothing
// blocks, and malformed input degrades to zero values instead of errors, so
// the core can run over partial historical data.
package finance

import (
	"math"

	"github.com/dvloznov/partner-ledger/internal/logger"
	"github.com/rs/zerolog"
)

func componentLog() zerolog.Logger {
	return logger.WithComponent("finance")
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
