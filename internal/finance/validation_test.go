package finance

import (
	"errors"
	"testing"

	"github.com/dvloznov/partner-ledger/internal/domain"
)

func TestValidateDonationConfig(t *testing.T) {
	tests := []struct {
		name         string
		cfg          domain.DonationConfig
		wantErr      bool
		wantWarnings int
	}{
		{
			name: "valid",
			cfg:  domain.DonationConfig{Enabled: true, Percentage: 5, TaxPreference: domain.DonateBeforeTax, MinimumAmount: ptr(10), MaximumAmount: ptr(100)},
		},
		{
			name: "disabled with zero percentage",
			cfg:  domain.DonationConfig{Enabled: false, Percentage: 0, TaxPreference: domain.DonateAfterTax},
		},
		{
			name:    "enabled with zero percentage",
			cfg:     domain.DonationConfig{Enabled: true, Percentage: 0, TaxPreference: domain.DonateBeforeTax},
			wantErr: true,
		},
		{
			name:    "percentage above 100",
			cfg:     domain.DonationConfig{Enabled: true, Percentage: 101, TaxPreference: domain.DonateBeforeTax},
			wantErr: true,
		},
		{
			name:    "unknown tax preference",
			cfg:     domain.DonationConfig{Enabled: true, Percentage: 5, TaxPreference: "sometimes"},
			wantErr: true,
		},
		{
			name:    "negative minimum",
			cfg:     domain.DonationConfig{Enabled: true, Percentage: 5, TaxPreference: domain.DonateBeforeTax, MinimumAmount: ptr(-1)},
			wantErr: true,
		},
		{
			name:         "maximum below minimum warns",
			cfg:          domain.DonationConfig{Enabled: true, Percentage: 5, TaxPreference: domain.DonateBeforeTax, MinimumAmount: ptr(100), MaximumAmount: ptr(40)},
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings, err := ValidateDonationConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(warnings) != tt.wantWarnings {
				t.Errorf("got %d warnings, want %d: %v", len(warnings), tt.wantWarnings, warnings)
			}
		})
	}
}

func TestValidatePartners(t *testing.T) {
	tests := []struct {
		name         string
		partners     []domain.Partner
		wantErr      bool
		wantWarnings int
	}{
		{
			name:     "valid pair",
			partners: twoPartners(),
		},
		{
			name: "duplicate id",
			partners: []domain.Partner{
				{ID: "p1", Name: "A", Equity: 0.5, IsActive: true},
				{ID: "p1", Name: "B", Equity: 0.5, IsActive: true},
			},
			wantErr: true,
		},
		{
			name:     "equity out of range",
			partners: []domain.Partner{{ID: "p1", Name: "A", Equity: 1.5, IsActive: true}},
			wantErr:  true,
			// the total also exceeds 100%
			wantWarnings: 1,
		},
		{
			name: "active equity over 100%",
			partners: []domain.Partner{
				{ID: "p1", Name: "A", Equity: 0.6, IsActive: true},
				{ID: "p2", Name: "B", Equity: 0.6, IsActive: true},
			},
			wantWarnings: 1,
		},
		{
			name: "float drift tolerated",
			partners: []domain.Partner{
				{ID: "p1", Name: "A", Equity: 0.1, IsActive: true},
				{ID: "p2", Name: "B", Equity: 0.2, IsActive: true},
				{ID: "p3", Name: "C", Equity: 0.7, IsActive: true},
			},
		},
		{
			name:         "no active partners",
			partners:     []domain.Partner{{ID: "p1", Name: "A", Equity: 1, IsActive: false}},
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings, err := ValidatePartners(tt.partners)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(warnings) != tt.wantWarnings {
				t.Errorf("got %d warnings, want %d: %v", len(warnings), tt.wantWarnings, warnings)
			}
		})
	}
}

func TestValidateIncomeSource(t *testing.T) {
	valid := domain.IncomeSource{
		ID:              "upwork",
		Name:            "Upwork",
		Enabled:         true,
		FeeRule:         &domain.FeeRule{Method: domain.FeeMethodPercentage, PercentageFee: ptr(10)},
		DefaultCurrency: domain.CurrencyUSD,
		DefaultTax:      &domain.TaxConfig{Enabled: true, Type: domain.TaxTypePercentage, Value: 1},
	}
	if err := ValidateIncomeSource(valid); err != nil {
		t.Fatalf("valid source rejected: %v", err)
	}

	bad := valid
	bad.FeeRule = &domain.FeeRule{Method: "tiered"}
	err := ValidateIncomeSource(bad)
	if err == nil {
		t.Fatal("expected error for unknown fee method")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "feeRule.method" {
		t.Errorf("expected feeRule.method validation error, got %v", err)
	}

	badTax := valid
	badTax.DefaultTax = &domain.TaxConfig{Enabled: true, Type: "flat"}
	if err := ValidateIncomeSource(badTax); err == nil {
		t.Error("expected error for unknown tax type")
	}
}
