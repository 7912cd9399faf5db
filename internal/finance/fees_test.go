package finance

import (
	"math"
	"testing"

	"github.com/dvloznov/partner-ledger/internal/domain"
)

func TestCalculateIncomeSourceFees(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		source *domain.IncomeSource
		want   float64
	}{
		{
			name:   "nil source",
			amount: 100,
			source: nil,
			want:   0,
		},
		{
			name:   "source without fee rule",
			amount: 100,
			source: &domain.IncomeSource{ID: "direct"},
			want:   0,
		},
		{
			name:   "fixed fee ignores amount",
			amount: 1000,
			source: &domain.IncomeSource{ID: "wise", FeeRule: &domain.FeeRule{Method: domain.FeeMethodFixed, FixedFeeUSD: ptr(5)}},
			want:   5,
		},
		{
			name:   "fixed fee without value",
			amount: 1000,
			source: &domain.IncomeSource{ID: "wise", FeeRule: &domain.FeeRule{Method: domain.FeeMethodFixed}},
			want:   0,
		},
		{
			name:   "percentage fee",
			amount: 200,
			source: &domain.IncomeSource{ID: "upwork", FeeRule: &domain.FeeRule{Method: domain.FeeMethodPercentage, PercentageFee: ptr(10)}},
			want:   20,
		},
		{
			name:   "hybrid fee",
			amount: 100,
			source: &domain.IncomeSource{ID: "payoneer", FeeRule: &domain.FeeRule{Method: domain.FeeMethodHybrid, FixedFeeUSD: ptr(1), PercentageFee: ptr(2)}},
			want:   3,
		},
		{
			name:   "negative amount is not clamped",
			amount: -100,
			source: &domain.IncomeSource{ID: "upwork", FeeRule: &domain.FeeRule{Method: domain.FeeMethodPercentage, PercentageFee: ptr(10)}},
			want:   -10,
		},
		{
			name:   "unknown method charges nothing",
			amount: 100,
			source: &domain.IncomeSource{ID: "odd", FeeRule: &domain.FeeRule{Method: "tiered", FixedFeeUSD: ptr(5)}},
			want:   0,
		},
		{
			name:   "non-finite fee charges nothing",
			amount: math.Inf(1),
			source: &domain.IncomeSource{ID: "upwork", FeeRule: &domain.FeeRule{Method: domain.FeeMethodPercentage, PercentageFee: ptr(10)}},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateIncomeSourceFees(tt.amount, tt.source)
			if got != tt.want {
				t.Errorf("CalculateIncomeSourceFees(%v) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestCalculateIncomeSourceFees_Monotonic(t *testing.T) {
	source := &domain.IncomeSource{
		ID:      "upwork",
		FeeRule: &domain.FeeRule{Method: domain.FeeMethodPercentage, PercentageFee: ptr(7.5)},
	}

	amounts := []float64{0, 0.01, 1, 9.99, 10, 250, 1000.5, 99999}
	prev := CalculateIncomeSourceFees(amounts[0], source)
	for _, a := range amounts[1:] {
		fee := CalculateIncomeSourceFees(a, source)
		if fee < prev {
			t.Fatalf("fee decreased: fee(%v) = %v < %v", a, fee, prev)
		}
		prev = fee
	}
}
