package domain

import "time"

// TransactionCalculations are derived by the calculator at entry time and are
// never edited by hand.
type TransactionCalculations struct {
	FeePKR        float64 `json:"feePKR"`
	GrossPKR      float64 `json:"grossPKR"`
	CharityAmount float64 `json:"charityAmount"`
	TaxAmount     float64 `json:"taxAmount"`
	NetProfit     float64 `json:"netProfit"`
	PartnerShare  float64 `json:"partnerShare"`
}

// Transaction is one income event. Currency and Amount are only set for
// PKR-denominated entries; USD entries use AmountUSD and ConversionRate.
type Transaction struct {
	ID             string     `json:"id"`
	IncomeSourceID string     `json:"incomeSourceId"`
	AmountUSD      float64    `json:"amountUSD"`
	ConversionRate float64    `json:"conversionRate"`
	Date           Date       `json:"date"`
	TaxRate        float64    `json:"taxRate"` // legacy percent
	Bank           string     `json:"bank"`
	Currency       Currency   `json:"currency,omitempty"`
	Amount         *float64   `json:"amount,omitempty"`
	TaxConfig      *TaxConfig `json:"taxConfig,omitempty"`

	Calculations TransactionCalculations `json:"calculations"`

	// Snapshots of the rules in force when the transaction was entered.
	IncomeSource   *IncomeSource   `json:"incomeSource,omitempty"`
	DonationConfig *DonationConfig `json:"donationConfig,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
