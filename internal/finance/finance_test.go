package finance

import (
	"math"

	"github.com/dvloznov/partner-ledger/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func twoPartners() []domain.Partner {
	return []domain.Partner{
		{ID: "p1", Name: "Alice", DisplayName: "Ali", Equity: 0.5, IsActive: true},
		{ID: "p2", Name: "Bilal", DisplayName: "Bil", Equity: 0.5, IsActive: true},
	}
}
