package domain

// TaxPreference controls whether donations are taken from gross income
// before tax or from the (estimated) post-tax amount.
type TaxPreference string

const (
	DonateBeforeTax TaxPreference = "before-tax"
	DonateAfterTax  TaxPreference = "after-tax"
)

// DonationConfig is the charitable-giving policy applied to each transaction.
type DonationConfig struct {
	Percentage    float64       `json:"percentage"`
	TaxPreference TaxPreference `json:"taxPreference"`
	Enabled       bool          `json:"enabled"`
	MinimumAmount *float64      `json:"minimumAmount,omitempty"`
	MaximumAmount *float64      `json:"maximumAmount,omitempty"`
}

// DonationPayout is money actually disbursed from the accrued donation fund.
type DonationPayout struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Date        Date    `json:"date"`
	PaidTo      string  `json:"paidTo"`
	Description string  `json:"description"`
}

// Clone returns a deep copy, used when a transaction snapshots the policy.
func (c DonationConfig) Clone() DonationConfig {
	out := c
	if c.MinimumAmount != nil {
		v := *c.MinimumAmount
		out.MinimumAmount = &v
	}
	if c.MaximumAmount != nil {
		v := *c.MaximumAmount
		out.MaximumAmount = &v
	}
	return out
}
