package finance

import "github.com/dvloznov/partner-ledger/internal/domain"

// CalculateTransactionValues derives fee, gross, donation, tax, net profit and
// partner share for one income event under the given donation policy.
//
// The branch order is significant and matches historical records:
//   - the donation is computed first; before-tax leaves gross minus the
//     unclamped donation taxable, after-tax estimates the donation from gross
//     minus a legacy-rate tax estimate and keeps the full gross taxable;
//   - the donation is then clamped to the minimum and then to the maximum;
//   - taxConfig wins over the legacy taxRate.
func CalculateTransactionValues(input TransactionInput, donation *domain.DonationConfig) domain.TransactionCalculations {
	var grossPKR, feePKR float64

	switch e := input.Entry.(type) {
	case PKREntry:
		grossPKR = e.Amount
	case USDEntry:
		fee := CalculateIncomeSourceFees(e.AmountUSD, e.Source)
		amountAfterFees := e.AmountUSD - fee
		grossPKR = amountAfterFees * e.ConversionRate
		if e.ConversionRate != 0 {
			feePKR = (e.AmountUSD - grossPKR/e.ConversionRate) * e.ConversionRate
		} else {
			// fee*rate is 0 as well; the back-derivation would be 0/0.
			l := componentLog()
			l.Warn().
				Float64("amount_usd", e.AmountUSD).
				Msg("Conversion rate is zero, gross and fee recorded as 0 PKR")
		}
	default:
		l := componentLog()
		l.Warn().Msg("Transaction input has no entry, nothing calculated")
		return domain.TransactionCalculations{}
	}

	afterTax := donation != nil && donation.Enabled && donation.TaxPreference == domain.DonateAfterTax

	charityAmount := 0.0
	taxableAmount := grossPKR
	if donation != nil && donation.Enabled {
		if afterTax {
			tempTax := grossPKR * input.TaxRate / 100
			tempNet := grossPKR - tempTax
			charityAmount = tempNet * donation.Percentage / 100
		} else {
			charityAmount = grossPKR * donation.Percentage / 100
			taxableAmount = grossPKR - charityAmount
		}

		if donation.MinimumAmount != nil && charityAmount < *donation.MinimumAmount {
			charityAmount = *donation.MinimumAmount
		}
		if donation.MaximumAmount != nil && charityAmount > *donation.MaximumAmount {
			charityAmount = *donation.MaximumAmount
		}
	}

	taxBase := taxableAmount
	if afterTax {
		taxBase = grossPKR
	}

	taxAmount := 0.0
	switch {
	case input.TaxConfig != nil && input.TaxConfig.Enabled:
		if input.TaxConfig.Type == domain.TaxTypeFixed {
			taxAmount = input.TaxConfig.Value
		} else {
			taxAmount = taxBase * input.TaxConfig.Value / 100
		}
	case input.TaxRate > 0:
		taxAmount = taxBase * input.TaxRate / 100
	}

	var netProfit float64
	if afterTax {
		netProfit = grossPKR - taxAmount - charityAmount
	} else {
		netProfit = taxableAmount - taxAmount
	}

	return domain.TransactionCalculations{
		FeePKR:        feePKR,
		GrossPKR:      grossPKR,
		CharityAmount: charityAmount,
		TaxAmount:     taxAmount,
		NetProfit:     netProfit,
		PartnerShare:  netProfit,
	}
}

// NewTransaction builds a transaction record from input: the entry fields, the
// recorded conversion rate (1 for PKR entries), snapshots of the income source
// and donation policy, and the calculations. Identity, date and bank are left
// to the caller.
func NewTransaction(input TransactionInput, source *domain.IncomeSource, donation *domain.DonationConfig) domain.Transaction {
	tx := domain.Transaction{
		TaxRate:      input.TaxRate,
		TaxConfig:    input.TaxConfig,
		Calculations: CalculateTransactionValues(input, donation),
	}

	switch e := input.Entry.(type) {
	case PKREntry:
		amount := e.Amount
		tx.Currency = domain.CurrencyPKR
		tx.Amount = &amount
		tx.ConversionRate = 1
	case USDEntry:
		tx.Currency = domain.CurrencyUSD
		tx.AmountUSD = e.AmountUSD
		tx.ConversionRate = e.ConversionRate
	}

	if source != nil {
		snapshot := source.Clone()
		tx.IncomeSourceID = snapshot.ID
		tx.IncomeSource = &snapshot
	}

	if donation != nil {
		cfg := donation.Clone()
		tx.DonationConfig = &cfg
	}
	return tx
}
