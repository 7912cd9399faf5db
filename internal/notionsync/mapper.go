package notionsync

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/partner-ledger/internal/domain"
	"github.com/dvloznov/partner-ledger/internal/money"
)

// Property names of the Notion transactions database.
const (
	propTitle          = "Description"
	propTransactionID  = "Transaction ID"
	propDate           = "Date"
	propIncomeSource   = "Income Source"
	propCurrency       = "Currency"
	propAmountUSD      = "Amount USD"
	propAmountPKR      = "Amount PKR"
	propConversionRate = "Conversion Rate"
	propFeePKR         = "Fee PKR"
	propGrossPKR       = "Gross PKR"
	propTax            = "Tax"
	propCharity        = "Charity"
	propNetProfit      = "Net Profit"
	propBank           = "Bank"
)

// TransactionToNotionProperties converts a ledger transaction and its
// calculations to Notion properties.
func TransactionToNotionProperties(tx domain.Transaction) notionapi.Properties {
	c := tx.Calculations
	currency := tx.Currency
	if currency == "" {
		currency = domain.CurrencyUSD
	}

	props := notionapi.Properties{
		propTitle: notionapi.TitleProperty{
			Title: []notionapi.RichText{text(transactionTitle(tx))},
		},
		propTransactionID: notionapi.RichTextProperty{
			RichText: []notionapi.RichText{text(tx.ID)},
		},
		propCurrency: notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(currency)},
		},
		propConversionRate: notionapi.NumberProperty{Number: tx.ConversionRate},
		propFeePKR:         notionapi.NumberProperty{Number: money.Round(c.FeePKR, domain.CurrencyPKR).InexactFloat64()},
		propGrossPKR:       notionapi.NumberProperty{Number: money.Round(c.GrossPKR, domain.CurrencyPKR).InexactFloat64()},
		propTax:            notionapi.NumberProperty{Number: money.Round(c.TaxAmount, domain.CurrencyPKR).InexactFloat64()},
		propCharity:        notionapi.NumberProperty{Number: money.Round(c.CharityAmount, domain.CurrencyPKR).InexactFloat64()},
		propNetProfit:      notionapi.NumberProperty{Number: money.Round(c.NetProfit, domain.CurrencyPKR).InexactFloat64()},
	}

	if currency == domain.CurrencyPKR && tx.Amount != nil {
		props[propAmountPKR] = notionapi.NumberProperty{Number: *tx.Amount}
	} else {
		props[propAmountUSD] = notionapi.NumberProperty{Number: tx.AmountUSD}
	}

	if !tx.Date.IsZero() {
		d := notionapi.Date(time.Date(tx.Date.Year, tx.Date.Month, tx.Date.Day, 0, 0, 0, 0, time.UTC))
		props[propDate] = notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &d},
		}
	}

	if name := incomeSourceName(tx); name != "" {
		props[propIncomeSource] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: name},
		}
	}

	if tx.Bank != "" {
		props[propBank] = notionapi.RichTextProperty{
			RichText: []notionapi.RichText{text(tx.Bank)},
		}
	}

	return props
}

func transactionTitle(tx domain.Transaction) string {
	name := incomeSourceName(tx)
	if name == "" {
		name = "Income"
	}
	return name + " " + money.PKR(tx.Calculations.GrossPKR)
}

func incomeSourceName(tx domain.Transaction) string {
	if tx.IncomeSource != nil && tx.IncomeSource.Name != "" {
		return tx.IncomeSource.Name
	}
	return tx.IncomeSourceID
}

func text(content string) notionapi.RichText {
	return notionapi.RichText{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: content},
	}
}
