package domain

// Currency is the denomination of an income entry.
type Currency string

const (
	CurrencyPKR Currency = "PKR"
	CurrencyUSD Currency = "USD"
)

// FeeMethod selects how an income source charges its fee.
type FeeMethod string

const (
	FeeMethodFixed      FeeMethod = "fixed"
	FeeMethodPercentage FeeMethod = "percentage"
	FeeMethodHybrid     FeeMethod = "hybrid"
)

// FeeRule describes the fee an income channel deducts, expressed in USD.
type FeeRule struct {
	Method        FeeMethod `json:"method"`
	FixedFeeUSD   *float64  `json:"fixedFeeUSD,omitempty"`
	PercentageFee *float64  `json:"percentageFee,omitempty"`
}

// TaxType selects how a TaxConfig value is interpreted.
type TaxType string

const (
	TaxTypePercentage TaxType = "percentage"
	TaxTypeFixed      TaxType = "fixed"
)

// TaxConfig is a structured tax setting. For TaxTypePercentage, Value is a
// percent; for TaxTypeFixed it is a flat PKR amount.
type TaxConfig struct {
	Enabled bool    `json:"enabled"`
	Type    TaxType `json:"type"`
	Value   float64 `json:"value"`
}

// IncomeSource is a named income channel with its fee rule and entry defaults.
// It is reference data: the calculation core only reads it.
type IncomeSource struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Enabled         bool       `json:"enabled"`
	FeeRule         *FeeRule   `json:"feeRule,omitempty"`
	DefaultCurrency Currency   `json:"defaultCurrency,omitempty"`
	DefaultTax      *TaxConfig `json:"defaultTax,omitempty"`
}

// Clone returns a deep copy, used when a transaction snapshots its source.
func (s IncomeSource) Clone() IncomeSource {
	c := s
	if s.FeeRule != nil {
		rule := *s.FeeRule
		if rule.FixedFeeUSD != nil {
			v := *rule.FixedFeeUSD
			rule.FixedFeeUSD = &v
		}
		if rule.PercentageFee != nil {
			v := *rule.PercentageFee
			rule.PercentageFee = &v
		}
		c.FeeRule = &rule
	}
	if s.DefaultTax != nil {
		tax := *s.DefaultTax
		c.DefaultTax = &tax
	}
	return c
}
