package finance

import (
	"errors"
	"fmt"

	"github.com/dvloznov/partner-ledger/internal/domain"
)

// equityTolerance absorbs float drift when summing equity fractions.
const equityTolerance = 1e-9

// ValidationError describes one invalid or suspicious configuration value.
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ValidateDonationConfig checks a donation policy before it is saved. Hard
// errors are joined into err. Warnings flag configurations the calculator
// accepts but that probably do not mean what the user intended, such as a
// maximum below the minimum (the maximum wins).
func ValidateDonationConfig(cfg domain.DonationConfig) (warnings []*ValidationError, err error) {
	var errs []error

	if cfg.Percentage < 0 || cfg.Percentage > 100 {
		errs = append(errs, NewValidationError("percentage", cfg.Percentage, "must be between 0 and 100"))
	} else if cfg.Enabled && cfg.Percentage == 0 {
		errs = append(errs, NewValidationError("percentage", cfg.Percentage, "must be greater than 0 when donations are enabled"))
	}

	switch cfg.TaxPreference {
	case domain.DonateBeforeTax, domain.DonateAfterTax:
	default:
		errs = append(errs, NewValidationError("taxPreference", cfg.TaxPreference, "must be before-tax or after-tax"))
	}

	if cfg.MinimumAmount != nil && *cfg.MinimumAmount < 0 {
		errs = append(errs, NewValidationError("minimumAmount", *cfg.MinimumAmount, "must not be negative"))
	}
	if cfg.MaximumAmount != nil && *cfg.MaximumAmount < 0 {
		errs = append(errs, NewValidationError("maximumAmount", *cfg.MaximumAmount, "must not be negative"))
	}

	if cfg.MinimumAmount != nil && cfg.MaximumAmount != nil && *cfg.MinimumAmount >= *cfg.MaximumAmount {
		warnings = append(warnings, NewValidationError("maximumAmount", *cfg.MaximumAmount,
			fmt.Sprintf("should be greater than minimumAmount %v; the maximum is applied last and wins", *cfg.MinimumAmount)))
	}

	return warnings, errors.Join(errs...)
}

// ValidatePartners checks the partner set. Duplicate or empty ids and equity
// outside [0,1] are errors. An active equity total other than 1 is only a
// warning since the splitter normalises by the total.
func ValidatePartners(partners []domain.Partner) (warnings []*ValidationError, err error) {
	var errs []error
	seen := make(map[string]bool, len(partners))
	activeEquity := 0.0
	activeCount := 0

	for i, p := range partners {
		field := fmt.Sprintf("partners[%d]", i)
		if p.ID == "" {
			errs = append(errs, NewValidationError(field+".id", p.ID, "is required"))
		} else if seen[p.ID] {
			errs = append(errs, NewValidationError(field+".id", p.ID, "is duplicated"))
		}
		seen[p.ID] = true

		if p.Name == "" {
			errs = append(errs, NewValidationError(field+".name", p.Name, "is required"))
		}
		if p.Equity < 0 || p.Equity > 1 {
			errs = append(errs, NewValidationError(field+".equity", p.Equity, "must be between 0 and 1"))
		}
		if p.IsActive {
			activeEquity += p.Equity
			activeCount++
		}
	}

	switch {
	case activeCount == 0:
		warnings = append(warnings, NewValidationError("partners", activeCount, "no active partners; earnings cannot be distributed"))
	case activeEquity > 1+equityTolerance:
		warnings = append(warnings, NewValidationError("partners.equity", activeEquity, "active equity exceeds 100%; shares are normalised by the total"))
	case activeEquity < 1-equityTolerance:
		warnings = append(warnings, NewValidationError("partners.equity", activeEquity, "active equity is below 100%; shares are normalised by the total"))
	}

	return warnings, errors.Join(errs...)
}

// ValidateIncomeSource checks an income source before it is saved.
func ValidateIncomeSource(source domain.IncomeSource) error {
	var errs []error

	if source.ID == "" {
		errs = append(errs, NewValidationError("id", source.ID, "is required"))
	}
	if source.Name == "" {
		errs = append(errs, NewValidationError("name", source.Name, "is required"))
	}

	switch source.DefaultCurrency {
	case "", domain.CurrencyPKR, domain.CurrencyUSD:
	default:
		errs = append(errs, NewValidationError("defaultCurrency", source.DefaultCurrency, "must be PKR or USD"))
	}

	if rule := source.FeeRule; rule != nil {
		switch rule.Method {
		case domain.FeeMethodFixed, domain.FeeMethodPercentage, domain.FeeMethodHybrid:
		default:
			errs = append(errs, NewValidationError("feeRule.method", rule.Method, "must be fixed, percentage or hybrid"))
		}
		if rule.FixedFeeUSD != nil && *rule.FixedFeeUSD < 0 {
			errs = append(errs, NewValidationError("feeRule.fixedFeeUSD", *rule.FixedFeeUSD, "must not be negative"))
		}
		if rule.PercentageFee != nil && (*rule.PercentageFee < 0 || *rule.PercentageFee > 100) {
			errs = append(errs, NewValidationError("feeRule.percentageFee", *rule.PercentageFee, "must be between 0 and 100"))
		}
	}

	if tax := source.DefaultTax; tax != nil {
		if err := validateTaxConfig("defaultTax", *tax); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// ValidateTaxConfig checks a structured tax setting. A disabled setting is
// ignored by the calculator and always passes.
func ValidateTaxConfig(tax domain.TaxConfig) error {
	return validateTaxConfig("taxConfig", tax)
}

func validateTaxConfig(field string, tax domain.TaxConfig) error {
	if !tax.Enabled {
		return nil
	}
	switch tax.Type {
	case domain.TaxTypePercentage:
		if tax.Value < 0 || tax.Value > 100 {
			return NewValidationError(field+".value", tax.Value, "must be between 0 and 100")
		}
	case domain.TaxTypeFixed:
		if tax.Value < 0 {
			return NewValidationError(field+".value", tax.Value, "must not be negative")
		}
	default:
		return NewValidationError(field+".type", tax.Type, "must be percentage or fixed")
	}
	return nil
}
