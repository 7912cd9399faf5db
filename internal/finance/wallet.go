package finance

import "github.com/dvloznov/partner-ledger/internal/domain"

// GetWalletStats projects a Financials snapshot into company-mode wallet
// figures. currentCapital and currentDonationsFund, when given, replace the
// balance and fund: a dashboard filtered to a date range still shows the
// all-time balance computed by a second, unfiltered aggregation.
func GetWalletStats(f domain.Financials, currentCapital, currentDonationsFund *float64) domain.WalletStats {
	stats := domain.WalletStats{
		TotalIncome:      f.TotalGrossProfit,
		TotalExpenses:    f.TotalExpenses,
		NetAmount:        f.TotalNetProfit - f.TotalExpenses,
		AvailableBalance: f.CompanyCapital,
		DonationsFund:    f.AvailableDonationsFund,
	}
	if currentCapital != nil {
		stats.AvailableBalance = *currentCapital
	}
	if currentDonationsFund != nil {
		stats.DonationsFund = *currentDonationsFund
	}
	return stats
}

// GetPartnerWalletStats projects personal-mode figures for one partner. A
// partner missing from the snapshot reads as zero. The donation fund is
// shared, so it is the company-wide figure.
func GetPartnerWalletStats(f domain.Financials, partnerID string, currentBalance, currentDonationsFund *float64) domain.WalletStats {
	earnings := f.PartnerEarnings[partnerID]
	expenses := f.PartnerExpenses[partnerID]

	stats := domain.WalletStats{
		TotalIncome:      earnings,
		TotalExpenses:    expenses,
		NetAmount:        earnings - expenses,
		AvailableBalance: earnings - expenses,
		DonationsFund:    f.AvailableDonationsFund,
	}
	if currentBalance != nil {
		stats.AvailableBalance = *currentBalance
	}
	if currentDonationsFund != nil {
		stats.DonationsFund = *currentDonationsFund
	}
	return stats
}

// PartnerBalance is earnings minus expenses for one partner.
func PartnerBalance(f domain.Financials, partnerID string) float64 {
	return f.PartnerEarnings[partnerID] - f.PartnerExpenses[partnerID]
}
