package finance

import (
	"testing"

	"github.com/dvloznov/partner-ledger/internal/domain"
)

func TestCalculatePartnerShares(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		partners []domain.Partner
		want     map[string]float64
	}{
		{
			name:     "equal split",
			amount:   300,
			partners: twoPartners(),
			want:     map[string]float64{"p1": 150, "p2": 150},
		},
		{
			name:   "inactive partner excluded",
			amount: 1000,
			partners: []domain.Partner{
				{ID: "p1", Equity: 0.5, IsActive: true},
				{ID: "p2", Equity: 0.5, IsActive: false},
			},
			want: map[string]float64{"p1": 1000},
		},
		{
			name:   "equity not summing to one is normalised",
			amount: 900,
			partners: []domain.Partner{
				{ID: "p1", Equity: 0.2, IsActive: true},
				{ID: "p2", Equity: 0.4, IsActive: true},
			},
			want: map[string]float64{"p1": 300, "p2": 600},
		},
		{
			name:     "no partners",
			amount:   500,
			partners: nil,
			want:     map[string]float64{},
		},
		{
			name:   "all zero equity",
			amount: 500,
			partners: []domain.Partner{
				{ID: "p1", Equity: 0, IsActive: true},
			},
			want: map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePartnerShares(tt.amount, domain.PartnerConfig{Partners: tt.partners})
			if got == nil {
				t.Fatal("expected non-nil map")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d shares, want %d: %v", len(got), len(tt.want), got)
			}
			for id, want := range tt.want {
				if !approxEqual(got[id], want) {
					t.Errorf("share[%s] = %v, want %v", id, got[id], want)
				}
			}
		})
	}
}

func TestCalculatePartnerShares_Conservation(t *testing.T) {
	configs := [][]domain.Partner{
		{
			{ID: "a", Equity: 0.3, IsActive: true},
			{ID: "b", Equity: 0.3, IsActive: true},
			{ID: "c", Equity: 0.4, IsActive: true},
		},
		{
			{ID: "a", Equity: 0.1, IsActive: true},
			{ID: "b", Equity: 0.7, IsActive: true},
			{ID: "c", Equity: 0.15, IsActive: true},
			{ID: "d", Equity: 0.9, IsActive: false},
		},
		{
			{ID: "solo", Equity: 0.33, IsActive: true},
		},
	}
	amounts := []float64{0, 1, 33.33, 1234.567, -250, 1e6 + 0.01}

	for _, partners := range configs {
		for _, amount := range amounts {
			shares := CalculatePartnerShares(amount, domain.PartnerConfig{Partners: partners})
			sum := 0.0
			for _, s := range shares {
				sum += s
			}
			if !approxEqual(sum, amount) && !approxEqual(sum/amount, 1) {
				t.Errorf("shares of %v sum to %v", amount, sum)
			}
		}
	}
}
