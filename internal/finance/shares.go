package finance

import "github.com/dvloznov/partner-ledger/internal/domain"

// CalculatePartnerShares distributes amount across the active partners of
// config in proportion to equity, normalised by the total active equity so the
// shares always add up to amount even when equities do not sum to 1.
//
// With no active equity the result is empty; callers treat a missing partner
// as a zero share. Shares are not rounded.
func CalculatePartnerShares(amount float64, config domain.PartnerConfig) map[string]float64 {
	shares := make(map[string]float64)

	active := domain.ActivePartners(config.Partners)
	totalEquity := 0.0
	for _, p := range active {
		totalEquity += p.Equity
	}
	if totalEquity <= 0 {
		return shares
	}

	for _, p := range active {
		shares[p.ID] += amount * (p.Equity / totalEquity)
	}
	return shares
}
