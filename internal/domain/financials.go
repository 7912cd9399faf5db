package domain

// Loan summarises the single largest partner deficit. OwedBy is nil when no
// partner is in deficit.
type Loan struct {
	Amount float64 `json:"amount"`
	OwedBy *string `json:"owedBy"`
}

// Deficit is a partner whose expenses exceed their earnings.
type Deficit struct {
	PartnerID string  `json:"partnerId"`
	Amount    float64 `json:"amount"`
}

// Financials is the aggregate snapshot derived from all records. It is never
// persisted.
type Financials struct {
	TotalGrossProfit       float64            `json:"totalGrossProfit"`
	TotalNetProfit         float64            `json:"totalNetProfit"`
	TotalExpenses          float64            `json:"totalExpenses"`
	TotalPersonalExpenses  float64            `json:"totalPersonalExpenses"`
	TotalCompanyExpenses   float64            `json:"totalCompanyExpenses"`
	TotalDonationsAccrued  float64            `json:"totalDonationsAccrued"`
	TotalDonationsPaid     float64            `json:"totalDonationsPaid"`
	CompanyCapital         float64            `json:"companyCapital"`
	AvailableDonationsFund float64            `json:"availableDonationsFund"`
	Loan                   Loan               `json:"loan"`
	DeficitPartners        []Deficit          `json:"deficitPartners"`
	PartnerEarnings        map[string]float64 `json:"partnerEarnings"`
	PartnerExpenses        map[string]float64 `json:"partnerExpenses"`
}

// WalletStats are the display figures shown on dashboard and wallet screens.
type WalletStats struct {
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpenses    float64 `json:"totalExpenses"`
	NetAmount        float64 `json:"netAmount"`
	AvailableBalance float64 `json:"availableBalance"`
	DonationsFund    float64 `json:"donationsFund"`
}
