package finance

import "github.com/dvloznov/partner-ledger/internal/domain"

// AttributeExpenses stamps a partner id onto legacy expenses that only carry
// a ByWhom name, matching name or display name across all partners (inactive
// ones included, since they may have spent while active). Only changed
// expenses are returned in attributed; those that already carry an id are
// skipped. Unmatched expenses are returned separately.
func AttributeExpenses(expenses []domain.Expense, partners []domain.Partner) (attributed, unmatched []domain.Expense) {
	for _, e := range expenses {
		if e.PartnerID != "" {
			continue
		}
		p, ok := matchPartnerByName(e.ByWhom, partners)
		if !ok {
			unmatched = append(unmatched, e)
			continue
		}
		e.PartnerID = p.ID
		attributed = append(attributed, e)
	}
	return attributed, unmatched
}
