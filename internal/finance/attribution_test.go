package finance

import (
	"testing"

	"github.com/dvloznov/partner-ledger/internal/domain"
)

func TestAttributeExpenses(t *testing.T) {
	partners := append(twoPartners(), domain.Partner{ID: "p3", Name: "Chen", IsActive: false})
	expenses := []domain.Expense{
		{ID: "e1", ByWhom: "Alice"},
		{ID: "e2", ByWhom: "Bil"},
		{ID: "e3", ByWhom: "Chen"},
		{ID: "e4", ByWhom: "Zara"},
		{ID: "e5", ByWhom: "Alice", PartnerID: "p2"},
	}

	attributed, unmatched := AttributeExpenses(expenses, partners)

	want := map[string]string{"e1": "p1", "e2": "p2", "e3": "p3"}
	if len(attributed) != len(want) {
		t.Fatalf("attributed %d expenses, want %d", len(attributed), len(want))
	}
	for _, e := range attributed {
		if e.PartnerID != want[e.ID] {
			t.Errorf("expense %s attributed to %q, want %q", e.ID, e.PartnerID, want[e.ID])
		}
	}
	if len(unmatched) != 1 || unmatched[0].ID != "e4" {
		t.Errorf("unmatched = %+v, want only e4", unmatched)
	}
	if expenses[0].PartnerID != "" {
		t.Error("input slice was mutated")
	}
}
