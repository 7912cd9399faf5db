package finance

import (
	"math"

	"github.com/dvloznov/partner-ledger/internal/domain"
)

// CalculateFinancials folds transactions, expenses and donation payouts into a
// Financials snapshot for the given active partners.
//
// Every active partner appears in PartnerEarnings and PartnerExpenses, even
// without activity. Transaction partner shares and company expenses are split
// by equity through partnerConfig. Personal expenses are charged to their
// owner only. An expense whose owner cannot be resolved, or a record with a
// non-finite amount, is skipped.
//
// Partners are visited in the order of activePartners, so identical inputs
// give bit-identical outputs.
func CalculateFinancials(
	transactions []domain.Transaction,
	expenses []domain.Expense,
	donationPayouts []domain.DonationPayout,
	activePartners []domain.Partner,
	partnerConfig domain.PartnerConfig,
) domain.Financials {
	l := componentLog()

	f := domain.Financials{
		DeficitPartners: []domain.Deficit{},
		PartnerEarnings: make(map[string]float64, len(activePartners)),
		PartnerExpenses: make(map[string]float64, len(activePartners)),
	}

	for _, p := range activePartners {
		f.PartnerEarnings[p.ID] = 0
	}

	for _, tx := range transactions {
		c := tx.Calculations
		if !isFinite(c.GrossPKR) || !isFinite(c.NetProfit) || !isFinite(c.CharityAmount) || !isFinite(c.PartnerShare) {
			l.Debug().Str("transaction_id", tx.ID).Msg("Skipping transaction with non-finite calculations")
			continue
		}
		f.TotalGrossProfit += c.GrossPKR
		f.TotalNetProfit += c.NetProfit
		f.TotalDonationsAccrued += c.CharityAmount
		for id, share := range CalculatePartnerShares(c.PartnerShare, partnerConfig) {
			f.PartnerEarnings[id] += share
		}
	}

	for _, payout := range donationPayouts {
		if !isFinite(payout.Amount) {
			l.Debug().Str("payout_id", payout.ID).Msg("Skipping donation payout with non-finite amount")
			continue
		}
		f.TotalDonationsPaid += payout.Amount
	}
	f.AvailableDonationsFund = f.TotalDonationsAccrued - f.TotalDonationsPaid

	for _, p := range activePartners {
		f.PartnerExpenses[p.ID] = 0
	}

	for _, e := range expenses {
		if !isFinite(e.Amount) {
			l.Debug().Str("expense_id", e.ID).Msg("Skipping expense with non-finite amount")
			continue
		}
		owner, ok := ResolveExpenseOwner(e, activePartners)
		if !ok {
			l.Debug().
				Str("expense_id", e.ID).
				Str("by_whom", e.ByWhom).
				Str("partner_id", e.PartnerID).
				Msg("Expense owner matches no active partner, excluded from totals")
			continue
		}

		switch e.Type {
		case domain.ExpensePersonal:
			f.TotalPersonalExpenses += e.Amount
			f.PartnerExpenses[owner.ID] += e.Amount
		case domain.ExpenseCompany:
			f.TotalCompanyExpenses += e.Amount
			for id, share := range CalculatePartnerShares(e.Amount, partnerConfig) {
				f.PartnerExpenses[id] += share
			}
		default:
			l.Debug().
				Str("expense_id", e.ID).
				Str("type", string(e.Type)).
				Msg("Skipping expense with unknown type")
		}
	}

	f.TotalExpenses = f.TotalPersonalExpenses + f.TotalCompanyExpenses

	totalBalance := 0.0
	for _, p := range activePartners {
		balance := f.PartnerEarnings[p.ID] - f.PartnerExpenses[p.ID]
		totalBalance += balance
		if balance < 0 {
			f.DeficitPartners = append(f.DeficitPartners, domain.Deficit{
				PartnerID: p.ID,
				Amount:    math.Abs(balance),
			})
		}
	}
	f.CompanyCapital = totalBalance - f.TotalDonationsPaid

	f.Loan = largestDeficit(f.DeficitPartners)
	return f
}

// largestDeficit keeps the first deficit seen among equals.
func largestDeficit(deficits []domain.Deficit) domain.Loan {
	if len(deficits) == 0 {
		return domain.Loan{}
	}
	largest := deficits[0]
	for _, d := range deficits[1:] {
		if d.Amount > largest.Amount {
			largest = d
		}
	}
	owedBy := largest.PartnerID
	return domain.Loan{Amount: largest.Amount, OwedBy: &owedBy}
}

// ResolveExpenseOwner finds the active partner who spent e. A stored partner
// id is authoritative; records without one fall back to matching ByWhom
// against partner name or display name, first match wins.
func ResolveExpenseOwner(e domain.Expense, activePartners []domain.Partner) (domain.Partner, bool) {
	if e.PartnerID != "" {
		for _, p := range activePartners {
			if p.ID == e.PartnerID {
				return p, true
			}
		}
		return domain.Partner{}, false
	}
	return matchPartnerByName(e.ByWhom, activePartners)
}

func matchPartnerByName(name string, partners []domain.Partner) (domain.Partner, bool) {
	if name == "" {
		return domain.Partner{}, false
	}
	for _, p := range partners {
		if p.Name == name || p.DisplayName == name {
			return p, true
		}
	}
	return domain.Partner{}, false
}
