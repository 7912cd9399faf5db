package finance

import "github.com/dvloznov/partner-ledger/internal/domain"

// Entry is the raw income amount of a transaction: either USDEntry or
// PKREntry.
type Entry interface {
	isEntry()
}

// USDEntry is income received in USD through an income source that may
// charge a fee, converted to PKR at ConversionRate.
type USDEntry struct {
	AmountUSD      float64
	ConversionRate float64
	Source         *domain.IncomeSource
}

// PKREntry is income received directly in PKR. No fee applies.
type PKREntry struct {
	Amount float64
}

func (USDEntry) isEntry() {}
func (PKREntry) isEntry() {}

// TransactionInput is everything the calculator needs for one income event.
type TransactionInput struct {
	Entry     Entry
	TaxRate   float64 // legacy percent, also used for the after-tax donation estimate
	TaxConfig *domain.TaxConfig
}

// EntryFromTransaction recovers the entry of a stored transaction. Records
// carry PKR amounts as optional fields, so a transaction is a PKR entry only
// when its currency is PKR and an amount is present.
func EntryFromTransaction(tx domain.Transaction, source *domain.IncomeSource) Entry {
	if tx.Currency == domain.CurrencyPKR && tx.Amount != nil {
		return PKREntry{Amount: *tx.Amount}
	}
	return USDEntry{
		AmountUSD:      tx.AmountUSD,
		ConversionRate: tx.ConversionRate,
		Source:         source,
	}
}

// InputFromTransaction rebuilds the calculator input of a stored transaction.
func InputFromTransaction(tx domain.Transaction, source *domain.IncomeSource) TransactionInput {
	return TransactionInput{
		Entry:     EntryFromTransaction(tx, source),
		TaxRate:   tx.TaxRate,
		TaxConfig: tx.TaxConfig,
	}
}
