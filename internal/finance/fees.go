package finance

import "github.com/dvloznov/partner-ledger/internal/domain"

// CalculateIncomeSourceFees returns the USD fee the source charges on
// amountUSD. A source without a fee rule charges nothing, and a rule that
// cannot be evaluated is logged and treated as zero so that fee problems never
// block a transaction. Negative amounts are not clamped.
func CalculateIncomeSourceFees(amountUSD float64, source *domain.IncomeSource) float64 {
	if source == nil || source.FeeRule == nil {
		return 0
	}

	rule := source.FeeRule
	fixed := deref(rule.FixedFeeUSD)
	pct := deref(rule.PercentageFee)

	var fee float64
	switch rule.Method {
	case domain.FeeMethodFixed:
		fee = fixed
	case domain.FeeMethodPercentage:
		fee = amountUSD * pct / 100
	case domain.FeeMethodHybrid:
		fee = fixed + amountUSD*pct/100
	default:
		l := componentLog()
		l.Warn().
			Str("income_source_id", source.ID).
			Str("method", string(rule.Method)).
			Msg("Unknown fee method, charging no fee")
		return 0
	}

	if !isFinite(fee) {
		l := componentLog()
		l.Warn().
			Str("income_source_id", source.ID).
			Float64("amount_usd", amountUSD).
			Msg("Fee rule produced a non-finite fee, charging no fee")
		return 0
	}
	return fee
}
