// Package money formats ledger amounts for display. Calculations stay in
// float64; this package only rounds at the presentation edge.
package money

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/partner-ledger/internal/domain"
)

// Round rounds amount to the minor unit of currency (2 places when the
// currency is unknown).
func Round(amount float64, currency domain.Currency) decimal.Decimal {
	places := int32(2)
	if cur := gomoney.GetCurrency(string(currency)); cur != nil {
		places = int32(cur.Fraction)
	}
	return decimal.NewFromFloat(amount).Round(places)
}

// New converts amount into a go-money value in minor units.
func New(amount float64, currency domain.Currency) *gomoney.Money {
	code := string(currency)
	cur := gomoney.GetCurrency(code)
	if cur == nil {
		code = string(domain.CurrencyPKR)
		cur = gomoney.GetCurrency(code)
	}

	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := Round(amount, domain.Currency(code)).Mul(factor)
	return gomoney.New(minor.IntPart(), code)
}

// Format renders amount with its currency symbol and thousands separators.
func Format(amount float64, currency domain.Currency) string {
	return New(amount, currency).Display()
}

// PKR renders a PKR amount.
func PKR(amount float64) string {
	return Format(amount, domain.CurrencyPKR)
}

// USD renders a USD amount.
func USD(amount float64) string {
	return Format(amount, domain.CurrencyUSD)
}

// Percent renders a percentage with two decimals.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}
